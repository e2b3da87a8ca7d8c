package services

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/policy"
)

// FreshnessWindow is the age under which a listing counts as recent.
const FreshnessWindow = 30 * time.Minute

var (
	ErrHousingNotFound      = errs.NotFound("housing not found")
	ErrInvalidAddress       = errs.Validation("invalid address")
	ErrGeocodingUnavailable = errs.Upstream(http.StatusBadGateway, "geocoding unavailable", nil)
)

// HousingService manages listings.
type HousingService struct {
	reader   HousingReader
	writer   HousingWriter
	users    UserReader
	geocoder Geocoder
	events   EventPublisher
	now      func() time.Time
}

// HousingOption configures a HousingService.
type HousingOption func(*HousingService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) HousingOption {
	return func(s *HousingService) {
		s.now = now
	}
}

// NewHousingService creates a new HousingService instance.
func NewHousingService(
	reader HousingReader,
	writer HousingWriter,
	users UserReader,
	geocoder Geocoder,
	events EventPublisher,
	opts ...HousingOption,
) *HousingService {
	s := &HousingService{
		reader:   reader,
		writer:   writer,
		users:    users,
		geocoder: geocoder,
		events:   events,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the owner and the address and persists the listing
// with its coordinates.
func (svc *HousingService) Create(ctx context.Context, in models.HousingInput) (*models.Housing, error) {
	owner, err := svc.users.GetByID(ctx, in.OwnerID)
	if err != nil {
		logger.Log.Errorw("failed to get owner", "owner_id", in.OwnerID, "err", err)
		return nil, err
	}
	if err := policy.CheckOwner(owner); err != nil {
		logger.Log.Warnw("invalid owner", "owner_id", in.OwnerID)
		return nil, err
	}

	h := models.Housing{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Price:       in.Price,
		Rooms:       in.Rooms,
		Bathrooms:   in.Bathrooms,
		Size:        in.Size,
		Images:      in.Images,
		Available:   true,
		OwnerID:     in.OwnerID,
	}
	if in.Available != nil {
		h.Available = *in.Available
	}
	if h.Images == nil {
		h.Images = []string{}
	}
	if err := policy.CheckListing(h); err != nil {
		return nil, err
	}

	coords, err := svc.geocode(ctx, h.Address)
	if err != nil {
		return nil, err
	}
	h.Latitude, h.Longitude = &coords.Latitude, &coords.Longitude

	created, err := svc.writer.Create(ctx, &h)
	if err != nil {
		logger.Log.Errorw("failed to save housing", "owner_id", in.OwnerID, "err", err)
		return nil, err
	}

	svc.events.Publish(ctx, newEvent(models.EventHousingCreated, created.ID, created.CreatedAt, created))
	return created, nil
}

// geocode resolves address. Unresolvable addresses are a client error and
// anything else an upstream failure.
func (svc *HousingService) geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	coords, err := svc.geocoder.Geocode(ctx, address)
	if err != nil {
		if errs.KindOf(err) == errs.KindValidation {
			return nil, ErrInvalidAddress
		}
		logger.Log.Errorw("geocoding failed", "address", address, "err", err)
		return nil, ErrGeocodingUnavailable.Wrap(err)
	}
	return coords, nil
}

// Get returns the listing with its owner summary.
func (svc *HousingService) Get(ctx context.Context, id int64) (*models.Housing, error) {
	h, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get housing", "id", id, "err", err)
		return nil, err
	}
	if h == nil {
		return nil, ErrHousingNotFound
	}
	return h, nil
}

// Update applies p on behalf of requesterID. The address is geocoded again
// only when it changes.
func (svc *HousingService) Update(ctx context.Context, id, requesterID int64, p models.HousingPatch) (*models.Housing, error) {
	existing, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(existing, requesterID, policy.ActionUpdate); err != nil {
		return nil, err
	}

	p.Coordinates = nil
	if err := policy.CheckListing(p.Apply(*existing)); err != nil {
		return nil, err
	}

	if p.Address != nil && *p.Address != existing.Address {
		coords, err := svc.geocode(ctx, *p.Address)
		if err != nil {
			return nil, err
		}
		p.Coordinates = coords
	}

	updated, err := svc.writer.Update(ctx, id, p)
	if err != nil {
		logger.Log.Errorw("failed to update housing", "id", id, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrHousingNotFound
	}
	return updated, nil
}

// Delete removes the listing on behalf of requesterID.
func (svc *HousingService) Delete(ctx context.Context, id, requesterID int64) error {
	existing, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(existing, requesterID, policy.ActionDelete); err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete housing", "id", id, "err", err)
		return err
	}

	svc.events.Publish(ctx, newEvent(models.EventHousingDeleted, id, svc.now(), existing.Summary()))
	return nil
}

// List returns the listings matching f, newest first.
func (svc *HousingService) List(ctx context.Context, f filters.HousingFilter) ([]*models.Housing, error) {
	list, err := svc.reader.List(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list housing", "err", err)
		return nil, err
	}
	return list, nil
}

// IsRecent reports whether the listing was created within FreshnessWindow.
func (svc *HousingService) IsRecent(ctx context.Context, id int64) (bool, error) {
	h, err := svc.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return svc.now().Sub(h.CreatedAt) < FreshnessWindow, nil
}
