package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/generation"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// chatCompleter is the subset of *openai.Client used by CopyWriter.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CopyWriter requests listing copy from an OpenAI chat model.
type CopyWriter struct {
	logger *slog.Logger
	client chatCompleter
	model  string
}

var _ generation.CopyWriter = (*CopyWriter)(nil)

// NewCopyWriter builds a CopyWriter from the OpenAI part of the LLM config.
// OpenAIBaseURL, when set, points the client at a compatible endpoint.
func NewCopyWriter(logger *slog.Logger, cfg config.LLMConfig) (*CopyWriter, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.OpenAIModel == "" {
		return nil, fmt.Errorf("%w: openai model cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return newCopyWriter(logger, openai.NewClientWithConfig(clientConfig), cfg.OpenAIModel), nil
}

func newCopyWriter(logger *slog.Logger, client chatCompleter, model string) *CopyWriter {
	return &CopyWriter{
		logger: logger.With("component", "openai_copywriter"),
		client: client,
		model:  model,
	}
}

// RequestListingCopy implements generation.CopyWriter.
func (w *CopyWriter) RequestListingCopy(ctx context.Context, src domain.SourceImage) (domain.ListingCopy, error) {
	if err := generation.ValidateSource(src); err != nil {
		return domain.ListingCopy{}, err
	}

	logger := w.logger.With("model", w.model)
	logger.DebugContext(ctx, "requesting listing copy", "source_bytes", src.Size())

	resp, err := w.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: w.model,
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURL(src),
						Detail: openai.ImageURLDetailAuto,
					},
				},
				{
					Type: openai.ChatMessagePartTypeText,
					Text: generation.ListingCopyInstruction,
				},
			},
		}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "listing_copy",
				Schema: listingCopySchema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return domain.ListingCopy{}, generation.Failure(err)
	}

	if len(resp.Choices) == 0 {
		return domain.ListingCopy{}, fmt.Errorf("%w: no response choices", generation.ErrInvalidResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return domain.ListingCopy{}, fmt.Errorf("%w: response withheld by content filter", generation.ErrContentBlocked)
	}
	if choice.Message.Refusal != "" {
		return domain.ListingCopy{}, fmt.Errorf("%w: model refused: %s", generation.ErrContentBlocked, choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return domain.ListingCopy{}, fmt.Errorf("%w: no text returned", generation.ErrInvalidResponse)
	}

	listing, err := generation.DecodeListingCopy([]byte(choice.Message.Content))
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

// dataURL encodes the source photo as data:<mime>;base64,<payload>.
func dataURL(src domain.SourceImage) string {
	return "data:" + src.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(src.Bytes())
}

// listingCopySchema is the strict response schema. Strict mode requires every
// property listed and additionalProperties disabled.
func listingCopySchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			generation.FieldTitle: {
				Type:        jsonschema.String,
				Description: "SEO optimized product title (max 200 chars)",
			},
			generation.FieldBullets: {
				Type:        jsonschema.Array,
				Description: "Exactly five benefit statements",
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			generation.FieldDescription: {
				Type:        jsonschema.String,
				Description: "Product description of roughly 150 words",
			},
		},
		Required:             generation.RequiredCopyFields,
		AdditionalProperties: false,
	}
}
