// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON
// (or text) logging with configurable log levels. Every handler it builds is
// wrapped in a RedactHandler so provider errors never leak credentials or inline
// image payloads into the log stream.
package logger
