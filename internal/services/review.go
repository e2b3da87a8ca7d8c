package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/policy"
)

var (
	ErrReviewNotFound = errs.NotFound("review not found")
	ErrInvalidUser    = errs.Validation("invalid user")
	ErrInvalidHousing = errs.Validation("invalid housing")
)

// ReviewService manages reviews.
type ReviewService struct {
	reader  ReviewReader
	writer  ReviewWriter
	users   UserReader
	housing HousingReader
	events  EventPublisher
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(
	reader ReviewReader,
	writer ReviewWriter,
	users UserReader,
	housing HousingReader,
	events EventPublisher,
) *ReviewService {
	return &ReviewService{
		reader:  reader,
		writer:  writer,
		users:   users,
		housing: housing,
		events:  events,
	}
}

// Create checks the score, the author, the housing and the one review per
// pair rule before persisting.
func (svc *ReviewService) Create(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	if err := policy.CheckScore(in.Score); err != nil {
		return nil, err
	}

	user, err := svc.users.GetByID(ctx, in.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get review author", "user_id", in.UserID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidUser
	}

	housing, err := svc.housing.GetByID(ctx, in.HousingID)
	if err != nil {
		logger.Log.Errorw("failed to get reviewed housing", "housing_id", in.HousingID, "err", err)
		return nil, err
	}
	if housing == nil {
		return nil, ErrInvalidHousing
	}

	existing, err := svc.reader.GetByUserAndHousing(ctx, in.UserID, in.HousingID)
	if err != nil {
		logger.Log.Errorw("failed to check existing review", "user_id", in.UserID, "housing_id", in.HousingID, "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warnw("duplicate review", "user_id", in.UserID, "housing_id", in.HousingID)
		return nil, policy.ErrDuplicateReview
	}

	created, err := svc.writer.Create(ctx, in)
	switch {
	case errors.Is(err, errs.ErrConflict):
		return nil, policy.ErrDuplicateReview
	case errors.Is(err, errs.ErrForeignKey):
		return nil, ErrInvalidHousing
	case err != nil:
		logger.Log.Errorw("failed to save review", "user_id", in.UserID, "housing_id", in.HousingID, "err", err)
		return nil, err
	}

	svc.events.Publish(ctx, newEvent(models.EventReviewCreated, created.ID, created.CreatedAt, created))
	return created, nil
}

// Get returns the review with its author and housing summaries.
func (svc *ReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	r, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get review", "id", id, "err", err)
		return nil, err
	}
	if r == nil {
		return nil, ErrReviewNotFound
	}
	return r, nil
}

// Update changes score and comment on behalf of requesterID.
func (svc *ReviewService) Update(ctx context.Context, id, requesterID int64, p models.ReviewPatch) (*models.Review, error) {
	existing, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(existing, requesterID, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if p.Score != nil {
		if err := policy.CheckScore(*p.Score); err != nil {
			return nil, err
		}
	}
	if p.Score == nil && p.Comment == nil {
		return existing, nil
	}

	updated, err := svc.writer.Update(ctx, id, p)
	if err != nil {
		logger.Log.Errorw("failed to update review", "id", id, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewNotFound
	}
	return updated, nil
}

// Delete removes the review on behalf of requesterID.
func (svc *ReviewService) Delete(ctx context.Context, id, requesterID int64) error {
	existing, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(existing, requesterID, policy.ActionDelete); err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete review", "id", id, "err", err)
		return err
	}
	return nil
}

// List returns the reviews matching f, newest first.
func (svc *ReviewService) List(ctx context.Context, f filters.ReviewFilter) ([]*models.Review, error) {
	list, err := svc.reader.List(ctx, f)
	if err != nil {
		logger.Log.Errorw("failed to list reviews", "err", err)
		return nil, err
	}
	return list, nil
}
