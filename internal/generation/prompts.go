package generation

import "github.com/phrazzld/listing-studio/internal/domain"

// DefaultStyleInstruction is used for a style without a dedicated instruction.
const DefaultStyleInstruction = "A professional product image."

var styleInstructions = map[domain.StyleKind]string{
	domain.StyleMainWhiteBackground: "Generate a professional e-commerce product photography shot of this exact object " +
		"on a pure solid white background (#FFFFFF). Ensure the entire product is visible, perfectly lit with soft " +
		"studio lighting, no shadows on the edges. High resolution, clean cut.",
	domain.StyleLifestyle: "Place this product in a realistic, high-quality lifestyle setting where it would naturally " +
		"be used. Ensure the lighting matches the environment. Make it look like a professional advertisement photo.",
	domain.StyleDetailCloseup: "Generate a macro close-up shot of this product, focusing on its texture, material " +
		"quality, and fine details. Shallow depth of field to highlight craftsmanship.",
	domain.StyleAlternateAngle: "Show this product from a slightly different angle (e.g., 45-degree side view) to " +
		"reveal depth. Maintain professional studio lighting on a neutral grey background.",
	domain.StyleCreativeMarketing: "Create a creative, eye-catching marketing image for this product. Use dramatic " +
		"lighting, or a colored background that complements the product colors. Make it pop for a social media ad.",
}

// StyleInstruction returns the natural-language instruction sent with the
// source photo for the given style.
func StyleInstruction(style domain.StyleKind) string {
	if instruction, ok := styleInstructions[style]; ok {
		return instruction
	}
	return DefaultStyleInstruction
}

// Bounds described to the model. They are not enforced on the response.
const (
	MaxTitleLength          = 200
	ExpectedBulletCount     = 5
	TargetDescriptionLength = 150
)

// ListingCopyInstruction asks for marketplace listing copy in a fixed JSON shape.
const ListingCopyInstruction = `Act as an expert Amazon FBA Copywriter. Analyze the provided product image and write high-converting listing content.
Return the result in JSON format with the following schema:
{
  "title": "SEO optimized product title (max 200 chars)",
  "bullets": ["Benefit 1", "Benefit 2", "Benefit 3", "Benefit 4", "Benefit 5"],
  "description": "A compelling product description (approx 150 words) suitable for A+ content."
}`
