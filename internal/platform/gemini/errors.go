package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNilLogger is returned when a client is constructed without a logger.
	ErrNilLogger = errors.New("logger cannot be nil")
)
