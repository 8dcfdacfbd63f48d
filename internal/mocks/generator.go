package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/generation"
)

// MockGenerator implements generation.Client for testing
type MockGenerator struct {
	// ImageFn allows test cases to mock the RequestStyledImage behavior
	ImageFn func(ctx context.Context, src domain.SourceImage, style domain.StyleKind) (domain.GeneratedImage, error)

	// CopyFn allows test cases to mock the RequestListingCopy behavior
	CopyFn func(ctx context.Context, src domain.SourceImage) (domain.ListingCopy, error)

	// Default response values, used when the Fn hooks are nil
	Image    domain.GeneratedImage
	ImageErr error
	Copy     domain.ListingCopy
	CopyErr  error

	// mu protects the call tracking state for concurrent test cases
	mu sync.Mutex

	// styles records the style of every RequestStyledImage call, in call order
	styles []domain.StyleKind

	// copyCalls counts RequestListingCopy calls
	copyCalls int

	// sources records the source of every call, image or copy
	sources []domain.SourceImage
}

var _ generation.Client = (*MockGenerator)(nil)

// RequestStyledImage implements generation.ImageGenerator
func (m *MockGenerator) RequestStyledImage(
	ctx context.Context,
	src domain.SourceImage,
	style domain.StyleKind,
) (domain.GeneratedImage, error) {
	m.mu.Lock()
	m.styles = append(m.styles, style)
	m.sources = append(m.sources, src)
	m.mu.Unlock()

	if m.ImageFn != nil {
		return m.ImageFn(ctx, src, style)
	}
	return m.Image, m.ImageErr
}

// RequestListingCopy implements generation.CopyWriter
func (m *MockGenerator) RequestListingCopy(ctx context.Context, src domain.SourceImage) (domain.ListingCopy, error) {
	m.mu.Lock()
	m.copyCalls++
	m.sources = append(m.sources, src)
	m.mu.Unlock()

	if m.CopyFn != nil {
		return m.CopyFn(ctx, src)
	}
	return m.Copy, m.CopyErr
}

// ImageCalls returns how many times RequestStyledImage was called.
func (m *MockGenerator) ImageCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.styles)
}

// ImageCallsFor returns how many times RequestStyledImage was called for style.
func (m *MockGenerator) ImageCallsFor(style domain.StyleKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.styles {
		if s == style {
			n++
		}
	}
	return n
}

// Styles returns the requested styles in call order.
func (m *MockGenerator) Styles() []domain.StyleKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.StyleKind, len(m.styles))
	copy(out, m.styles)
	return out
}

// CopyCalls returns how many times RequestListingCopy was called.
func (m *MockGenerator) CopyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.copyCalls
}

// Sources returns the source image of every call in call order.
func (m *MockGenerator) Sources() []domain.SourceImage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.SourceImage, len(m.sources))
	copy(out, m.sources)
	return out
}

// NewSucceedingGenerator creates a MockGenerator where every call succeeds
// with a small PNG payload and complete listing copy.
func NewSucceedingGenerator() *MockGenerator {
	return &MockGenerator{
		Image: domain.GeneratedImage{Data: []byte("\x89PNG generated"), MIMEType: domain.MIMETypePNG},
		Copy:  SampleListingCopy(),
	}
}

// NewFailingGenerator creates a MockGenerator where every call fails with err.
func NewFailingGenerator(err error) *MockGenerator {
	return &MockGenerator{
		ImageErr: err,
		CopyErr:  err,
	}
}

// SampleListingCopy returns complete listing copy with five bullets.
func SampleListingCopy() domain.ListingCopy {
	return domain.ListingCopy{
		Title: "Handmade Ceramic Coffee Mug, 12 oz, Speckled Glaze",
		Bullets: []string{
			"Wheel-thrown stoneware for everyday durability",
			"Generous 12 oz capacity for coffee or tea",
			"Dishwasher and microwave safe",
			"Comfortable wide handle",
			"Each glaze pattern is unique",
		},
		Description: "A sturdy handmade mug with a speckled glaze that keeps drinks warm.",
	}
}
