// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyImageData is returned when a source image carries no bytes.
	ErrEmptyImageData = errors.New("image data cannot be empty")

	// ErrUnsupportedMIMEType is returned when an image MIME type is not accepted.
	ErrUnsupportedMIMEType = errors.New("unsupported image MIME type")

	// ErrInvalidStyle is returned when a style slug does not name a known style.
	ErrInvalidStyle = errors.New("invalid style kind")
)
