package openai

import "errors"

// ErrNilLogger is returned when a nil logger is passed to NewCopyWriter.
var ErrNilLogger = errors.New("logger cannot be nil")
