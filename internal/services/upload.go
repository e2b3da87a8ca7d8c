package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// DefaultContentType is used when the client does not send one.
const DefaultContentType = "image/jpeg"

var (
	ErrMissingFilename = errs.Validation("filename is required")
	ErrRateLimited     = errs.RateLimit("too many upload requests")
)

// UploadService issues presigned upload forms.
type UploadService struct {
	presigner Presigner
	limiter   RateLimiter
	now       func() time.Time
}

// NewUploadService creates a new UploadService instance.
func NewUploadService(presigner Presigner, limiter RateLimiter) *UploadService {
	return &UploadService{presigner: presigner, limiter: limiter, now: time.Now}
}

// Presign returns a form for uploading filename straight to storage.
// Limiter failures do not block uploads.
func (svc *UploadService) Presign(ctx context.Context, clientKey, filename, contentType string) (*models.Upload, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrMissingFilename
	}
	if contentType == "" {
		contentType = DefaultContentType
	}

	allowed, err := svc.limiter.Allow(ctx, clientKey)
	if err != nil {
		logger.Log.Warnw("rate limiter unavailable", "client", clientKey, "err", err)
	} else if !allowed {
		logger.Log.Warnw("upload rate limit exceeded", "client", clientKey)
		return nil, ErrRateLimited
	}

	key := svc.objectKey(filename)
	upload, err := svc.presigner.PresignPost(ctx, key, contentType)
	if err != nil {
		logger.Log.Errorw("failed to presign upload", "key", key, "err", err)
		return nil, err
	}
	return upload, nil
}

// objectKey builds uploads/<uuid>-<unix millis>[.<ext>].
func (svc *UploadService) objectKey(filename string) string {
	key := fmt.Sprintf("uploads/%s-%d", uuid.NewString(), svc.now().UnixMilli())
	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")); ext != "" {
		key += "." + ext
	}
	return key
}
