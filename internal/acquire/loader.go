package acquire

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
)

// Loader reads photos under a size cap and a MIME allow-list.
type Loader struct {
	// MaxBytes caps the decoded image size. Zero or less disables the cap.
	MaxBytes int64

	// Accepted lists the MIME types a photo may have. Empty means
	// domain.AcceptedMIMETypes.
	Accepted []string
}

// NewLoader builds a Loader from the acquisition config section.
func NewLoader(cfg config.AcquireConfig) *Loader {
	return &Loader{
		MaxBytes: cfg.MaxBytes,
		Accepted: slices.Clone(cfg.AcceptedMIMETypes),
	}
}

// LoadFile reads the photo at path.
func (l *Loader) LoadFile(path string) (domain.SourceImage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceImage{}, fmt.Errorf("failed to stat image %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.SourceImage{}, fmt.Errorf("image path %s is a directory", path)
	}
	if l.MaxBytes > 0 && info.Size() > l.MaxBytes {
		return domain.SourceImage{}, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, info.Size(), l.MaxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.SourceImage{}, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return l.Read(f)
}

// Read consumes r fully, up to MaxBytes.
func (l *Loader) Read(r io.Reader) (domain.SourceImage, error) {
	if l.MaxBytes > 0 {
		r = io.LimitReader(r, l.MaxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return domain.SourceImage{}, fmt.Errorf("failed to read image: %w", err)
	}

	return l.fromBytes(data)
}

// FromDataURL decodes a data:image/<type>;base64,<payload> string.
func (l *Loader) FromDataURL(s string) (domain.SourceImage, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return domain.SourceImage{}, fmt.Errorf("%w: missing data: scheme", ErrMalformedDataURL)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return domain.SourceImage{}, fmt.Errorf("%w: missing payload separator", ErrMalformedDataURL)
	}
	if !strings.HasSuffix(header, ";base64") {
		return domain.SourceImage{}, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformedDataURL)
	}
	if !strings.HasPrefix(header, "image/") {
		return domain.SourceImage{}, fmt.Errorf("%w: declared type %q is not an image", ErrUnsupportedType, strings.TrimSuffix(header, ";base64"))
	}

	if l.MaxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > l.MaxBytes+2 {
		return domain.SourceImage{}, fmt.Errorf("%w: limit %d", ErrTooLarge, l.MaxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return domain.SourceImage{}, fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
	}

	return l.Read(bytes.NewReader(data))
}

func (l *Loader) fromBytes(data []byte) (domain.SourceImage, error) {
	if len(data) == 0 {
		return domain.SourceImage{}, ErrEmpty
	}
	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return domain.SourceImage{}, fmt.Errorf("%w: limit %d", ErrTooLarge, l.MaxBytes)
	}

	detected := mimetype.Detect(data)
	mimeType := domain.NormalizeMIMEType(detected.String())
	if !l.accepts(mimeType) {
		return domain.SourceImage{}, fmt.Errorf("%w: %s", ErrUnsupportedType, detected.String())
	}

	src, err := domain.NewSourceImage(data, mimeType)
	if err != nil {
		return domain.SourceImage{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	return src, nil
}

func (l *Loader) accepts(mimeType string) bool {
	accepted := l.Accepted
	if len(accepted) == 0 {
		accepted = domain.AcceptedMIMETypes
	}
	for _, a := range accepted {
		if domain.NormalizeMIMEType(a) == mimeType {
			return true
		}
	}
	return false
}
