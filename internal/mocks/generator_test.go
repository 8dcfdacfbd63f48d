package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/events"
	"github.com/phrazzld/listing-studio/internal/generation"
	"github.com/phrazzld/listing-studio/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()

	src, err := domain.NewSourceImage([]byte("photo"), domain.MIMETypePNG)
	require.NoError(t, err)

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewSucceedingGenerator()
		ctx := context.Background()

		img, err := gen.RequestStyledImage(ctx, src, domain.StyleLifestyle)
		require.NoError(t, err)
		assert.Equal(t, domain.MIMETypePNG, img.MIMEType)

		listing, err := gen.RequestListingCopy(ctx, src)
		require.NoError(t, err)
		assert.Len(t, listing.Bullets, 5)

		assert.Equal(t, 1, gen.ImageCalls())
		assert.Equal(t, 1, gen.ImageCallsFor(domain.StyleLifestyle))
		assert.Equal(t, 0, gen.ImageCallsFor(domain.StyleDetailCloseup))
		assert.Equal(t, 1, gen.CopyCalls())
		assert.Len(t, gen.Sources(), 2)
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		gen := mocks.NewFailingGenerator(generation.ErrContentBlocked)

		_, err := gen.RequestStyledImage(context.Background(), src, domain.StyleMainWhiteBackground)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)

		_, err = gen.RequestListingCopy(context.Background(), src)
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("Fn hooks take precedence", func(t *testing.T) {
		t.Parallel()

		gen := &mocks.MockGenerator{
			ImageFn: func(_ context.Context, _ domain.SourceImage, style domain.StyleKind) (domain.GeneratedImage, error) {
				return domain.GeneratedImage{Data: []byte(style)}, nil
			},
			ImageErr: errors.New("ignored"),
		}

		img, err := gen.RequestStyledImage(context.Background(), src, domain.StyleAlternateAngle)
		require.NoError(t, err)
		assert.Equal(t, []byte("angle"), img.Data)
		assert.Equal(t, []domain.StyleKind{domain.StyleAlternateAngle}, gen.Styles())
	})
}

func TestEventRecorder(t *testing.T) {
	t.Parallel()

	rec := &mocks.EventRecorder{}
	session := uuid.New()

	require.NoError(t, rec.HandleEvent(context.Background(),
		events.NewTaskStateEvent(session, "main", events.TaskTypeImage, domain.TaskStatusPending, 1, true)))
	require.NoError(t, rec.HandleEvent(context.Background(),
		events.NewTaskStateEvent(session, "copy", events.TaskTypeCopy, domain.TaskStatusPending, 1, true)))

	assert.Len(t, rec.Events(), 2)
	assert.Len(t, rec.ForTask("copy"), 1)
	assert.Empty(t, rec.ForTask("detail"))
}
