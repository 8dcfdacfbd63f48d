package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/generation"
	"google.golang.org/genai"
)

// Client implements generation.Client using Google's Gemini API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues generateContent calls
	models contentGenerator

	// imageModel is the image-capable Gemini model
	imageModel string

	// textModel is the Gemini model used for listing copy
	textModel string
}

var _ generation.Client = (*Client)(nil)

// NewClient creates a Gemini-backed generation client.
//
// Parameters:
//   - ctx: Context for client construction
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key and model names
//
// Returns:
//   - A properly initialized Client or an error if initialization fails
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ImageModel == "" || cfg.TextModel == "" {
		return nil, fmt.Errorf("%w: image and text model names cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newClient(logger, client.Models, cfg.ImageModel, cfg.TextModel), nil
}

func newClient(logger *slog.Logger, models contentGenerator, imageModel, textModel string) *Client {
	return &Client{
		logger:     logger.With("component", "gemini_client"),
		models:     models,
		imageModel: imageModel,
		textModel:  textModel,
	}
}

// RequestStyledImage sends the source photo and the instruction for style to
// the image model and returns the first inline image of the response.
func (c *Client) RequestStyledImage(
	ctx context.Context,
	src domain.SourceImage,
	style domain.StyleKind,
) (domain.GeneratedImage, error) {
	if err := generation.ValidateSource(src); err != nil {
		return domain.GeneratedImage{}, err
	}

	instruction := generation.StyleInstruction(style)
	logger := c.logger.With("style", style.String(), "model", c.imageModel)
	logger.DebugContext(ctx, "requesting styled image",
		"source_bytes", src.Size(),
		"instruction_length", len(instruction))

	resp, err := c.models.GenerateContent(ctx, c.imageModel,
		sourceContents(src, instruction),
		&genai.GenerateContentConfig{ResponseModalities: imageResponseModalities},
	)
	if err != nil {
		return domain.GeneratedImage{}, generation.Failure(err)
	}

	candidate, err := firstCandidate(resp)
	if err != nil {
		return domain.GeneratedImage{}, err
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}

		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = domain.MIMETypePNG
		}

		logger.DebugContext(ctx, "styled image received",
			"image_bytes", len(part.InlineData.Data),
			"mime_type", mimeType)
		return domain.GeneratedImage{Data: part.InlineData.Data, MIMEType: mimeType}, nil
	}

	return domain.GeneratedImage{}, fmt.Errorf("%w: model %s answered without inline data", generation.ErrNoImage, c.imageModel)
}

// RequestListingCopy asks the text model for typed JSON listing copy and
// validates it before returning.
func (c *Client) RequestListingCopy(ctx context.Context, src domain.SourceImage) (domain.ListingCopy, error) {
	if err := generation.ValidateSource(src); err != nil {
		return domain.ListingCopy{}, err
	}

	logger := c.logger.With("model", c.textModel)
	logger.DebugContext(ctx, "requesting listing copy", "source_bytes", src.Size())

	resp, err := c.models.GenerateContent(ctx, c.textModel,
		sourceContents(src, generation.ListingCopyInstruction),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   listingCopySchema(),
		},
	)
	if err != nil {
		return domain.ListingCopy{}, generation.Failure(err)
	}

	candidate, err := firstCandidate(resp)
	if err != nil {
		return domain.ListingCopy{}, err
	}

	text := candidateText(candidate)
	if strings.TrimSpace(text) == "" {
		return domain.ListingCopy{}, fmt.Errorf("%w: no text returned", generation.ErrInvalidResponse)
	}

	listing, err := generation.DecodeListingCopy([]byte(text))
	if err != nil {
		return domain.ListingCopy{}, err
	}

	if len(listing.Bullets) != generation.ExpectedBulletCount {
		logger.WarnContext(ctx, "listing copy bullet count differs from request",
			"bullet_count", len(listing.Bullets),
			"expected", generation.ExpectedBulletCount)
	}

	return listing, nil
}

// sourceContents builds a single user turn holding the photo and instruction.
func sourceContents(src domain.SourceImage, instruction string) []*genai.Content {
	return []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: src.MIMEType(), Data: src.Bytes()}},
			{Text: instruction},
		},
	}}
}

// firstCandidate classifies the response and returns its first candidate.
func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	switch {
	case resp == nil:
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "":
		return nil, fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return candidate, nil
}

// candidateText concatenates the text parts of a candidate.
func candidateText(candidate *genai.Candidate) string {
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
