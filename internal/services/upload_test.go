package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/services"
)

var uploadKey = regexp.MustCompile(`^uploads/[0-9a-f-]{36}-\d+\.png$`)

func TestUploadService_Presign(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		presigner := services.NewMockPresigner(ctrl)
		limiter := services.NewMockRateLimiter(ctrl)

		limiter.EXPECT().Allow(ctx, "10.0.0.1").Return(true, nil)
		presigner.EXPECT().PresignPost(ctx, gomock.Any(), "image/png").DoAndReturn(
			func(_ context.Context, key, _ string) (*models.Upload, error) {
				assert.Regexp(t, uploadKey, key)
				return &models.Upload{FileURL: "https://bucket/" + key}, nil
			})

		up, err := services.NewUploadService(presigner, limiter).Presign(ctx, "10.0.0.1", "Foto.PNG", "image/png")
		require.NoError(t, err)
		assert.Contains(t, up.FileURL, "uploads/")
	})

	t.Run("default content type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		presigner := services.NewMockPresigner(ctrl)
		limiter := services.NewMockRateLimiter(ctrl)

		limiter.EXPECT().Allow(ctx, gomock.Any()).Return(true, nil)
		presigner.EXPECT().PresignPost(ctx, gomock.Any(), services.DefaultContentType).Return(&models.Upload{}, nil)

		_, err := services.NewUploadService(presigner, limiter).Presign(ctx, "c", "a.jpg", "")
		require.NoError(t, err)
	})

	t.Run("missing filename", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := services.NewUploadService(services.NewMockPresigner(ctrl), services.NewMockRateLimiter(ctrl))

		_, err := svc.Presign(ctx, "c", "  ", "")
		assert.ErrorIs(t, err, services.ErrMissingFilename)
	})

	t.Run("rate limited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		limiter := services.NewMockRateLimiter(ctrl)
		limiter.EXPECT().Allow(ctx, "c").Return(false, nil)

		_, err := services.NewUploadService(services.NewMockPresigner(ctrl), limiter).Presign(ctx, "c", "a.jpg", "")
		assert.ErrorIs(t, err, services.ErrRateLimited)
	})

	t.Run("limiter failure lets the upload through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		presigner := services.NewMockPresigner(ctrl)
		limiter := services.NewMockRateLimiter(ctrl)

		limiter.EXPECT().Allow(ctx, "c").Return(false, errors.New("redis down"))
		presigner.EXPECT().PresignPost(ctx, gomock.Any(), gomock.Any()).Return(&models.Upload{}, nil)

		_, err := services.NewUploadService(presigner, limiter).Presign(ctx, "c", "a.jpg", "")
		require.NoError(t, err)
	})
}
