package gemini

import (
	"context"

	"github.com/phrazzld/listing-studio/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Response modalities requested from image-capable models.
var imageResponseModalities = []string{"TEXT", "IMAGE"}

// listingCopySchema describes the structured copy response to the model.
// Gemini enforces the required properties; generation.DecodeListingCopy
// checks them again on our side.
func listingCopySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			generation.FieldTitle: {
				Type:        genai.TypeString,
				Description: "SEO optimized product title (max 200 chars)",
			},
			generation.FieldBullets: {
				Type:        genai.TypeArray,
				Description: "Exactly five benefit statements",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			generation.FieldDescription: {
				Type:        genai.TypeString,
				Description: "Product description of roughly 150 words",
			},
		},
		Required: generation.RequiredCopyFields,
	}
}
