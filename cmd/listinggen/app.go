package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/listing-studio/internal/acquire"
	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/events"
	"github.com/phrazzld/listing-studio/internal/generation"
	"github.com/phrazzld/listing-studio/internal/platform/gemini"
	"github.com/phrazzld/listing-studio/internal/platform/logger"
	"github.com/phrazzld/listing-studio/internal/platform/openai"
	"github.com/phrazzld/listing-studio/internal/service"
	"github.com/spf13/pflag"
)

// errTasksFailed is returned when the session ends with failed tasks.
var errTasksFailed = errors.New("some tasks failed")

// shutdownTimeout bounds how long in-flight calls may take to settle on exit.
const shutdownTimeout = 5 * time.Second

// options holds the command line settings that are not configuration keys.
type options struct {
	image       string
	out         string
	retryFailed bool
}

// newFlagSet declares every flag. The configuration flags are bound to
// config keys by config.Load.
func newFlagSet() (*pflag.FlagSet, *options) {
	opts := &options{}
	fs := pflag.NewFlagSet("listinggen", pflag.ContinueOnError)

	fs.StringVarP(&opts.image, "image", "i", "", "product photo: file path, data URL or - for stdin")
	fs.StringVarP(&opts.out, "out", "o", "listing-output", "directory for generated images and listing.json")
	fs.BoolVar(&opts.retryFailed, "retry-failed", false, "offer to retry failed tasks interactively")

	fs.String("config", "", "YAML configuration file")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: json or text")
	fs.String("copy-provider", "", "listing copy provider: gemini or openai")
	fs.Duration("request-timeout", 0, "timeout for each provider call")

	return fs, opts
}

// run parses args, wires the application and runs one session.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs, opts := newFlagSet()
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.image == "" && fs.NArg() > 0 {
		opts.image = fs.Arg(0)
	}
	if opts.image == "" {
		return errors.New("a product photo is required (--image)")
	}
	if opts.image == "-" && opts.retryFailed {
		return errors.New("--retry-failed needs stdin and cannot be combined with --image -")
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"image_model", cfg.LLM.ImageModel,
		"text_model", cfg.LLM.TextModel,
		"copy_provider", cfg.LLM.CopyProvider,
		"request_timeout", cfg.LLM.RequestTimeout.String())

	src, err := loadSource(acquire.NewLoader(cfg.Acquire), opts.image, stdin)
	if err != nil {
		return fmt.Errorf("failed to load product photo: %w", err)
	}

	client, err := newGenerationClient(ctx, log, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize generation client: %w", err)
	}

	return generate(ctx, client, log, src, generateOptions{
		out:            opts.out,
		interactive:    opts.retryFailed,
		requestTimeout: cfg.LLM.RequestTimeout,
	}, stdin, stdout)
}

// loadSource reads the photo named by ref.
func loadSource(loader *acquire.Loader, ref string, stdin io.Reader) (domain.SourceImage, error) {
	switch {
	case ref == "-":
		return loader.Read(stdin)
	case strings.HasPrefix(ref, "data:"):
		return loader.FromDataURL(ref)
	default:
		return loader.LoadFile(ref)
	}
}

// newGenerationClient builds the provider client. Images always go to
// Gemini; listing copy goes to the configured copy provider.
func newGenerationClient(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.Client, error) {
	images, err := gemini.NewClient(ctx, log, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CopyProvider != config.CopyProviderOpenAI {
		return images, nil
	}

	writer, err := openai.NewCopyWriter(log, cfg)
	if err != nil {
		return nil, err
	}
	return generation.Compose(images, writer)
}

// generateOptions configures one generation session.
type generateOptions struct {
	out            string
	interactive    bool
	requestTimeout time.Duration
}

// generate submits src, waits for every task to settle, writes the results
// and, when interactive, offers retries until the user is done.
func generate(
	ctx context.Context,
	client generation.Client,
	log *slog.Logger,
	src domain.SourceImage,
	opts generateOptions,
	stdin io.Reader,
	stdout io.Writer,
) (err error) {
	stdout = &lockedWriter{w: stdout}

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(newProgressPrinter(stdout))

	orch, err := service.NewOrchestrator(client, emitter, log, service.Options{
		RequestTimeout: opts.requestTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := orch.Close(closeCtx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := orch.SubmitSourceImage(ctx, src); err != nil {
		return err
	}

	reader := bufio.NewReader(stdin)
	for {
		if err := orch.Wait(ctx); err != nil {
			return fmt.Errorf("generation interrupted: %w", err)
		}

		snap := orch.Snapshot()
		written, err := writeResults(opts.out, snap)
		if err != nil {
			return err
		}
		printSummary(stdout, snap, written)

		failed := snap.FailedTaskIDs()
		if len(failed) == 0 {
			return nil
		}
		if !opts.interactive {
			return fmt.Errorf("%w: %s", errTasksFailed, strings.Join(failed, ", "))
		}

		ids, err := promptRetry(reader, stdout, failed)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("%w: %s", errTasksFailed, strings.Join(failed, ", "))
		}

		for _, id := range ids {
			if err := orch.RetryTask(ctx, id); err != nil {
				fmt.Fprintf(stdout, "cannot retry %s: %v\n", id, err)
			}
		}
	}
}
