package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/generation"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	requests []openai.ChatCompletionRequest
	resp     openai.ChatCompletionResponse
	err      error
}

func (f *fakeChat) CreateChatCompletion(
	_ context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func answer(content string, finish openai.FinishReason) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: finish,
		}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSource(t *testing.T) domain.SourceImage {
	t.Helper()
	src, err := domain.NewSourceImage([]byte{0x89, 'P', 'N', 'G'}, "image/png")
	require.NoError(t, err)
	return src
}

func TestNewCopyWriterValidation(t *testing.T) {
	t.Parallel()

	_, err := NewCopyWriter(nil, config.LLMConfig{OpenAIAPIKey: "k", OpenAIModel: "m"})
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewCopyWriter(testLogger(), config.LLMConfig{OpenAIModel: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewCopyWriter(testLogger(), config.LLMConfig{OpenAIAPIKey: "k"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	w, err := NewCopyWriter(testLogger(), config.LLMConfig{
		OpenAIAPIKey:  "k",
		OpenAIModel:   "m",
		OpenAIBaseURL: "http://localhost:8080/v1",
	})
	require.NoError(t, err)
	assert.Equal(t, "m", w.model)
}

func TestRequestListingCopy(t *testing.T) {
	t.Parallel()

	t.Run("sends vision request with strict schema", func(t *testing.T) {
		t.Parallel()

		fake := &fakeChat{resp: answer(
			`{"title":"Mug","bullets":["a","b","c","d","e"],"description":"A mug."}`,
			openai.FinishReasonStop,
		)}
		w := newCopyWriter(testLogger(), fake, "gpt-test")

		got, err := w.RequestListingCopy(context.Background(), testSource(t))

		require.NoError(t, err)
		assert.Equal(t, domain.ListingCopy{
			Title:       "Mug",
			Bullets:     []string{"a", "b", "c", "d", "e"},
			Description: "A mug.",
		}, got)

		require.Len(t, fake.requests, 1)
		req := fake.requests[0]
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 1)
		parts := req.Messages[0].MultiContent
		require.Len(t, parts, 2)
		require.NotNil(t, parts[0].ImageURL)
		assert.True(t, strings.HasPrefix(parts[0].ImageURL.URL, "data:image/png;base64,"))
		assert.Equal(t, generation.ListingCopyInstruction, parts[1].Text)

		require.NotNil(t, req.ResponseFormat)
		require.NotNil(t, req.ResponseFormat.JSONSchema)
		assert.True(t, req.ResponseFormat.JSONSchema.Strict)

		raw, err := json.Marshal(req.ResponseFormat.JSONSchema.Schema)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"required":["title","bullets","description"]`)
	})

	t.Run("fewer bullets accepted", func(t *testing.T) {
		t.Parallel()

		fake := &fakeChat{resp: answer(`{"title":"X","bullets":["one"],"description":"Y"}`, openai.FinishReasonStop)}
		w := newCopyWriter(testLogger(), fake, "gpt-test")

		got, err := w.RequestListingCopy(context.Background(), testSource(t))

		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, got.Bullets)
	})

	failures := []struct {
		name    string
		fake    *fakeChat
		wantErr error
	}{
		{name: "no choices", fake: &fakeChat{}, wantErr: generation.ErrInvalidResponse},
		{name: "content filter", fake: &fakeChat{resp: answer("", openai.FinishReasonContentFilter)}, wantErr: generation.ErrContentBlocked},
		{name: "empty content", fake: &fakeChat{resp: answer("", openai.FinishReasonStop)}, wantErr: generation.ErrInvalidResponse},
		{name: "missing description", fake: &fakeChat{resp: answer(`{"title":"X","bullets":[]}`, openai.FinishReasonStop)}, wantErr: generation.ErrInvalidResponse},
		{name: "not json", fake: &fakeChat{resp: answer("Sure! Here is your listing", openai.FinishReasonStop)}, wantErr: generation.ErrInvalidResponse},
		{name: "api error", fake: &fakeChat{err: errors.New("status 500")}, wantErr: generation.ErrProvider},
		{name: "deadline", fake: &fakeChat{err: context.DeadlineExceeded}, wantErr: generation.ErrTimeout},
	}

	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := newCopyWriter(testLogger(), tc.fake, "gpt-test")

			_, err := w.RequestListingCopy(context.Background(), testSource(t))

			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		})
	}

	t.Run("invalid source", func(t *testing.T) {
		t.Parallel()

		fake := &fakeChat{}
		w := newCopyWriter(testLogger(), fake, "gpt-test")

		_, err := w.RequestListingCopy(context.Background(), domain.SourceImage{})

		assert.ErrorIs(t, err, generation.ErrInvalidSource)
		assert.Empty(t, fake.requests)
	})
}
