package acquire

import "errors"

var (
	// ErrTooLarge is returned when the photo exceeds the configured byte limit.
	ErrTooLarge = errors.New("image exceeds size limit")

	// ErrUnsupportedType is returned when the sniffed content type is not accepted.
	ErrUnsupportedType = errors.New("image type not accepted")

	// ErrMalformedDataURL is returned when a data URL cannot be parsed.
	ErrMalformedDataURL = errors.New("malformed data URL")

	// ErrEmpty is returned when no bytes were supplied.
	ErrEmpty = errors.New("image is empty")
)
