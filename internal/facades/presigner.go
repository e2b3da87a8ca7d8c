package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// S3Presigner issues presigned POST policies for direct browser uploads.
type S3Presigner struct {
	client  *minio.Client
	cfg     config.StorageConfig
	nowFunc func() time.Time
}

// NewS3Presigner creates the storage client. No request is made until a
// policy is signed, and with Region set not even then.
func NewS3Presigner(cfg config.StorageConfig) (*S3Presigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &S3Presigner{client: client, cfg: cfg, nowFunc: time.Now}, nil
}

// PresignPost signs a policy restricted to key, contentType and the
// configured maximum size.
func (p *S3Presigner) PresignPost(ctx context.Context, key, contentType string) (*models.Upload, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(p.cfg.Bucket); err != nil {
		return nil, err
	}
	if err := policy.SetKey(key); err != nil {
		return nil, err
	}
	if err := policy.SetExpires(p.nowFunc().UTC().Add(p.cfg.Expiry)); err != nil {
		return nil, err
	}
	if err := policy.SetContentType(contentType); err != nil {
		return nil, err
	}
	if err := policy.SetContentLengthRange(1, p.cfg.MaxSize); err != nil {
		return nil, err
	}

	u, fields, err := p.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		logger.Log.Errorw("failed to presign upload", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("upload presigned", "key", key, "content_type", contentType)

	return &models.Upload{
		PresignedPost: models.PresignedPost{URL: u.String(), Fields: fields},
		FileURL:       p.cfg.ObjectURL(key),
	}, nil
}
