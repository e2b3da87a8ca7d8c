// Package services implements the housing, review, user and upload use
// cases on top of the repositories and external facades.
package services

//go:generate mockgen -source=services.go -destination=mock_services.go -package=services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	UpdateByExternalID(ctx context.Context, externalID string, p models.UserPatch) (*models.User, error)
}

// HousingReader defines read-only operations for listings.
type HousingReader interface {
	GetByID(ctx context.Context, id int64) (*models.Housing, error)
	List(ctx context.Context, f filters.HousingFilter) ([]*models.Housing, error)
}

// HousingWriter defines write operations for listings.
type HousingWriter interface {
	Create(ctx context.Context, h *models.Housing) (*models.Housing, error)
	Update(ctx context.Context, id int64, p models.HousingPatch) (*models.Housing, error)
	Delete(ctx context.Context, id int64) error
}

// ReviewReader defines read-only operations for reviews.
type ReviewReader interface {
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByUserAndHousing(ctx context.Context, userID, housingID int64) (*models.Review, error)
	List(ctx context.Context, f filters.ReviewFilter) ([]*models.Review, error)
}

// ReviewWriter defines write operations for reviews.
type ReviewWriter interface {
	Create(ctx context.Context, in models.ReviewInput) (*models.Review, error)
	Update(ctx context.Context, id int64, p models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// EventPublisher publishes domain events. Implementations never fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event)
}

// IdentityProvider is the source of truth for credentials and external ids.
type IdentityProvider interface {
	ProvisionIdentity(ctx context.Context, email, password, name string) (*models.Identity, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.Identity, error)
}

// JWTGenerator defines an interface for generating session tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, user *models.User) (string, error)
}

// RateLimiter counts requests per key in a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Presigner issues presigned upload forms.
type Presigner interface {
	PresignPost(ctx context.Context, key, contentType string) (*models.Upload, error)
}

func newEvent(eventType string, id int64, at time.Time, payload any) models.Event {
	return models.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        strconv.FormatInt(id, 10),
		OccurredAt: at,
		Payload:    payload,
	}
}
