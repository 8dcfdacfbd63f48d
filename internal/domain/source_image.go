package domain

import (
	"fmt"
	"strings"
)

// Accepted source image MIME types.
const (
	MIMETypePNG  = "image/png"
	MIMETypeJPEG = "image/jpeg"
	MIMETypeWebP = "image/webp"
)

// AcceptedMIMETypes lists every MIME type a SourceImage may declare.
var AcceptedMIMETypes = []string{MIMETypePNG, MIMETypeJPEG, MIMETypeWebP}

// SourceImage is the uploaded product photo. It is immutable once created:
// the constructor copies the caller's bytes and Bytes returns a copy.
type SourceImage struct {
	data     []byte
	mimeType string
}

// NewSourceImage validates and copies the given image bytes.
// The MIME type is normalised (lower case, "image/jpg" becomes "image/jpeg").
func NewSourceImage(data []byte, mimeType string) (SourceImage, error) {
	if len(data) == 0 {
		return SourceImage{}, ErrEmptyImageData
	}

	normalized := NormalizeMIMEType(mimeType)
	if !IsAcceptedMIMEType(normalized) {
		return SourceImage{}, fmt.Errorf("%w: %q", ErrUnsupportedMIMEType, mimeType)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	return SourceImage{data: buf, mimeType: normalized}, nil
}

// Bytes returns a copy of the encoded image.
func (s SourceImage) Bytes() []byte {
	buf := make([]byte, len(s.data))
	copy(buf, s.data)
	return buf
}

// MIMEType returns the declared MIME type.
func (s SourceImage) MIMEType() string {
	return s.mimeType
}

// Size returns the number of encoded bytes.
func (s SourceImage) Size() int {
	return len(s.data)
}

// IsZero reports whether the image was never set.
func (s SourceImage) IsZero() bool {
	return len(s.data) == 0
}

// NormalizeMIMEType lower-cases a MIME type, drops parameters and maps the
// common "image/jpg" alias to "image/jpeg".
func NormalizeMIMEType(mimeType string) string {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	if m == "image/jpg" {
		return MIMETypeJPEG
	}
	return m
}

// IsAcceptedMIMEType reports whether mimeType is one of AcceptedMIMETypes.
func IsAcceptedMIMEType(mimeType string) bool {
	for _, accepted := range AcceptedMIMETypes {
		if mimeType == accepted {
			return true
		}
	}
	return false
}

// GeneratedImage is an image returned by the provider. The encoding is
// provider-determined and treated opaquely.
type GeneratedImage struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"`
}

// Extension returns a file extension matching the image MIME type.
func (g GeneratedImage) Extension() string {
	switch NormalizeMIMEType(g.MIMEType) {
	case MIMETypeJPEG:
		return ".jpg"
	case MIMETypeWebP:
		return ".webp"
	default:
		return ".png"
	}
}
