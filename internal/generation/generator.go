package generation

import (
	"context"
	"fmt"

	"github.com/phrazzld/listing-studio/internal/domain"
)

// ImageGenerator requests one styled product image for a source photo.
type ImageGenerator interface {
	// RequestStyledImage sends the source photo together with the instruction
	// for style and returns the first image payload of the response.
	// It does not retry; every failure wraps ErrGenerationFailed.
	RequestStyledImage(ctx context.Context, src domain.SourceImage, style domain.StyleKind) (domain.GeneratedImage, error)
}

// CopyWriter requests structured listing copy for a source photo.
type CopyWriter interface {
	// RequestListingCopy returns title, bullets and description as one
	// atomic result. A response missing any of the three fields is a failure.
	RequestListingCopy(ctx context.Context, src domain.SourceImage) (domain.ListingCopy, error)
}

// Client defines the full generation boundary consumed by the orchestrator.
// This interface serves as a boundary between the application core and
// external AI services, following the hexagonal architecture pattern.
type Client interface {
	ImageGenerator
	CopyWriter
}

type composite struct {
	ImageGenerator
	CopyWriter
}

// Compose joins an image generator and a copy writer, possibly backed by
// different providers, into one Client.
func Compose(images ImageGenerator, writer CopyWriter) (Client, error) {
	if images == nil {
		return nil, fmt.Errorf("%w: image generator cannot be nil", ErrInvalidConfig)
	}
	if writer == nil {
		return nil, fmt.Errorf("%w: copy writer cannot be nil", ErrInvalidConfig)
	}
	return composite{ImageGenerator: images, CopyWriter: writer}, nil
}

// ValidateSource checks the input constraints shared by every request.
func ValidateSource(src domain.SourceImage) error {
	if src.IsZero() {
		return fmt.Errorf("%w: %v", ErrInvalidSource, domain.ErrEmptyImageData)
	}
	if !domain.IsAcceptedMIMEType(src.MIMEType()) {
		return fmt.Errorf("%w: %v %q", ErrInvalidSource, domain.ErrUnsupportedMIMEType, src.MIMEType())
	}
	return nil
}
