// Package mocks provides centralized mock implementations for testing.
//
// Mocks expose function fields for each interface method plus call tracking,
// so a test can script provider behaviour per call and verify what was sent.
//
// Usage:
//
//	import "github.com/phrazzld/listing-studio/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := &mocks.MockGenerator{
//	        ImageFn: func(ctx context.Context, src domain.SourceImage, style domain.StyleKind) (domain.GeneratedImage, error) {
//	            return domain.GeneratedImage{Data: []byte("png"), MIMEType: "image/png"}, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
