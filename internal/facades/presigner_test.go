package facades

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/config"
)

func TestS3Presigner_PresignPost(t *testing.T) {
	cfg := config.StorageConfig{
		Endpoint:  "s3.amazonaws.com",
		Region:    "sa-east-1",
		Bucket:    "housing-uploads",
		AccessKey: "AKIAEXAMPLE",
		SecretKey: "secret",
		UseSSL:    true,
		MaxSize:   10 << 20,
		Expiry:    5 * time.Minute,
	}
	p, err := NewS3Presigner(cfg)
	require.NoError(t, err)

	up, err := p.PresignPost(context.Background(), "uploads/abc-1.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Contains(t, up.PresignedPost.URL, "housing-uploads")
	assert.Equal(t, "uploads/abc-1.jpg", up.PresignedPost.Fields["key"])
	assert.Equal(t, "image/jpeg", up.PresignedPost.Fields["Content-Type"])
	assert.NotEmpty(t, up.PresignedPost.Fields["policy"])
	assert.NotEmpty(t, up.PresignedPost.Fields["x-amz-signature"])
	assert.Equal(t, "https://housing-uploads.s3.sa-east-1.amazonaws.com/uploads/abc-1.jpg", up.FileURL)
}

func TestNewS3Presigner_InvalidEndpoint(t *testing.T) {
	_, err := NewS3Presigner(config.StorageConfig{Endpoint: "http://bad endpoint", Region: "us-east-1"})
	assert.Error(t, err)
}
