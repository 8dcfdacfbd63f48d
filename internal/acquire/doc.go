// Package acquire turns user-supplied photo input (a file path, a stream or
// a data URL) into a domain.SourceImage. The MIME type is sniffed from the
// content; the declared type of a data URL is not trusted.
package acquire
