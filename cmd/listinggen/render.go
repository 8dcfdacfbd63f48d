package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/events"
)

// listingFile is the name of the listing copy output file.
const listingFile = "listing.json"

// lockedWriter serializes writes from task goroutines and the main loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// progressPrinter prints one line per task transition.
type progressPrinter struct {
	w io.Writer
}

var _ events.EventHandler = (*progressPrinter)(nil)

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

// HandleEvent implements events.EventHandler.
func (p *progressPrinter) HandleEvent(_ context.Context, event *events.TaskStateEvent) error {
	line := fmt.Sprintf("[%-9s] %s (attempt %d)", event.Status, taskLabel(event.TaskID), event.Attempt)
	if event.Err != "" {
		line += ": " + event.Err
	}

	_, err := fmt.Fprintln(p.w, line)
	return err
}

// taskLabel returns the display name for a task id.
func taskLabel(id string) string {
	if id == domain.CopyTaskID {
		return "Listing Copy"
	}
	if style, err := domain.ParseStyleKind(id); err == nil {
		return style.Label()
	}
	return id
}

// writeResults writes every succeeded image as <id><ext> and the listing
// copy as listing.json into dir. It returns the written paths.
func writeResults(dir string, snap domain.SessionSnapshot) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, img := range snap.Images {
		if img.Status != domain.TaskStatusSucceeded || img.Image == nil {
			continue
		}
		path := filepath.Join(dir, img.ID+img.Image.Extension())
		if err := os.WriteFile(path, img.Image.Data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	if snap.Copy.Status == domain.TaskStatusSucceeded && snap.Copy.Copy != nil {
		raw, err := json.MarshalIndent(snap.Copy.Copy, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to encode listing copy: %w", err)
		}
		path := filepath.Join(dir, listingFile)
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	return written, nil
}

// printSummary prints the per-task outcome and the listing copy.
func printSummary(w io.Writer, snap domain.SessionSnapshot, written []string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d/%d images generated\n", snap.SucceededImages(), len(snap.Images))
	for _, img := range snap.Images {
		fmt.Fprintf(w, "  %-24s %s\n", img.Style.Label(), img.Status)
	}
	fmt.Fprintf(w, "  %-24s %s\n", taskLabel(domain.CopyTaskID), snap.Copy.Status)

	if c := snap.Copy.Copy; c != nil {
		fmt.Fprintf(w, "\nTitle: %s\n", c.Title)
		for _, b := range c.Bullets {
			fmt.Fprintf(w, "  - %s\n", b)
		}
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}

	if len(written) > 0 {
		fmt.Fprintln(w, "\nWritten:")
		for _, path := range written {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}

// promptRetry asks which failed tasks to retry. A blank answer or EOF means
// none; "all" selects every failed task.
func promptRetry(r *bufio.Reader, w io.Writer, failed []string) ([]string, error) {
	fmt.Fprintf(w, "\nFailed: %s\n", strings.Join(failed, ", "))
	fmt.Fprint(w, "Retry which tasks? (ids separated by spaces, \"all\", or blank to finish): ")

	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read answer: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) == 1 && strings.EqualFold(fields[0], "all") {
		return slices.Clone(failed), nil
	}

	var ids []string
	for _, f := range fields {
		id := strings.ToLower(f)
		if !slices.Contains(failed, id) {
			fmt.Fprintf(w, "ignoring %q: not a failed task\n", f)
			continue
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
