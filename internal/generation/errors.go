package generation

import (
	"context"
	"errors"
	"fmt"
)

// ErrGenerationFailed is the single GenerationFailure kind. Every error
// returned by a Client wraps it, so callers only ever need
// errors.Is(err, ErrGenerationFailed).
var ErrGenerationFailed = errors.New("generation failed")

// Finer-grained failures. Each one wraps ErrGenerationFailed.
var (
	// ErrInvalidSource is returned when the source image is empty or of an unaccepted type
	ErrInvalidSource = fmt.Errorf("%w: invalid source image", ErrGenerationFailed)

	// ErrInvalidResponse is returned when the provider response cannot be parsed or is malformed
	ErrInvalidResponse = fmt.Errorf("%w: invalid response from provider", ErrGenerationFailed)

	// ErrNoImage is returned when the provider response holds no inline image payload
	ErrNoImage = fmt.Errorf("%w: no image data returned", ErrGenerationFailed)

	// ErrContentBlocked is returned when the provider blocks the request due to safety filters
	ErrContentBlocked = fmt.Errorf("%w: content blocked by provider safety filters", ErrGenerationFailed)

	// ErrTimeout is returned when the provider did not answer before the deadline
	ErrTimeout = fmt.Errorf("%w: provider call timed out", ErrGenerationFailed)

	// ErrProvider is returned when the provider call itself errors
	ErrProvider = fmt.Errorf("%w: provider error", ErrGenerationFailed)
)

// ErrInvalidConfig is returned when a client configuration is invalid.
// It is a construction error, not a GenerationFailure.
var ErrInvalidConfig = errors.New("invalid generator configuration")

// Failure normalises any error into a GenerationFailure. Errors that already
// wrap ErrGenerationFailed are returned unchanged; deadline expiry becomes
// ErrTimeout; everything else becomes ErrProvider.
func Failure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrGenerationFailed):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
}
