package handlers

//go:generate mockgen -source=review.go -destination=mock_review.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/middlewares"
	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/policy"
)

type ReviewCreator interface {
	Create(ctx context.Context, in models.ReviewInput) (*models.Review, error)
}

type ReviewGetter interface {
	Get(ctx context.Context, id int64) (*models.Review, error)
}

type ReviewUpdater interface {
	Update(ctx context.Context, id, requesterID int64, p models.ReviewPatch) (*models.Review, error)
}

type ReviewDeleter interface {
	Delete(ctx context.Context, id, requesterID int64) error
}

type ReviewLister interface {
	List(ctx context.Context, f filters.ReviewFilter) ([]*models.Review, error)
}

// CreateReviewRequest represents the JSON body for a new review.
// userId defaults to the session user.
// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	UserID Integer `json:"userId" swaggertype:"integer"`
	// required: true
	HousingID Integer `json:"housingId" validate:"required" swaggertype:"integer"`
	// required: true
	// default: 5
	Score   *Integer `json:"score" validate:"required" swaggertype:"integer"`
	Comment string   `json:"comment"`
}

// UpdateReviewRequest carries the fields to change.
// swagger:model UpdateReviewRequest
type UpdateReviewRequest struct {
	UserID  Integer  `json:"userId" swaggertype:"integer"`
	Score   *Integer `json:"score" swaggertype:"integer"`
	Comment *string  `json:"comment"`
}

// AuthorRequest identifies the requester of a delete.
// swagger:model AuthorRequest
type AuthorRequest struct {
	UserID Integer `json:"userId" swaggertype:"integer"`
}

// ReviewResponse wraps a single review.
// swagger:model ReviewResponse
type ReviewResponse struct {
	Review *models.Review `json:"review"`
}

// ReviewListResponse wraps a list of reviews, newest first.
// swagger:model ReviewListResponse
type ReviewListResponse struct {
	Reviews []*models.Review `json:"reviews"`
}

// requester resolves the acting user from the body id and the session.
// A body id that contradicts the session is refused.
func requester(r *http.Request, bodyID Integer) (int64, error) {
	claims, ok := middlewares.ClaimsFromContext(r.Context())
	switch {
	case !ok:
		return int64(bodyID), nil
	case bodyID == 0:
		return claims.UserID, nil
	case int64(bodyID) != claims.UserID:
		return 0, policy.ErrNotAuthorized
	default:
		return claims.UserID, nil
	}
}

// NewCreateReviewHandler returns an HTTP handler for publishing a review.
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body handlers.CreateReviewRequest true "Review"
// @Success 201 {object} handlers.ReviewResponse
// @Failure 400 {object} handlers.ErrorResponse "score out of range / invalid user / invalid housing / duplicate review"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /reviews [post]
// @Security BearerAuth
func NewCreateReviewHandler(svc ReviewCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReviewRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := requester(r, req.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		review, err := svc.Create(r.Context(), models.ReviewInput{
			UserID:    userID,
			HousingID: int64(req.HousingID),
			Score:     int(*req.Score),
			Comment:   req.Comment,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, ReviewResponse{Review: review})
	}
}

// NewGetReviewHandler returns an HTTP handler that reads one review.
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} handlers.ReviewResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /reviews/{id} [get]
func NewGetReviewHandler(svc ReviewGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		review, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ReviewResponse{Review: review})
	}
}

// NewUpdateReviewHandler returns an HTTP handler that changes score and comment.
// @Summary Update review
// @Description Only the author may update.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body handlers.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} handlers.ReviewResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /reviews/{id} [put]
// @Security BearerAuth
func NewUpdateReviewHandler(svc ReviewUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req UpdateReviewRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := requester(r, req.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		review, err := svc.Update(r.Context(), id, userID, models.ReviewPatch{
			Score:   intPtr(req.Score),
			Comment: req.Comment,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ReviewResponse{Review: review})
	}
}

// NewDeleteReviewHandler returns an HTTP handler that removes a review.
// @Summary Delete review
// @Tags reviews
// @Accept json
// @Param id path int true "Review ID"
// @Param request body handlers.AuthorRequest false "Requester"
// @Success 204
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /reviews/{id} [delete]
// @Security BearerAuth
func NewDeleteReviewHandler(svc ReviewDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req AuthorRequest
		if r.ContentLength != 0 {
			if err := decodeRequest(r, &req); err != nil {
				writeError(w, r, err)
				return
			}
		}

		userID, err := requester(r, req.UserID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.Delete(r.Context(), id, userID); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewListReviewsHandler returns an HTTP handler listing reviews.
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param housingId query int false "Housing ID"
// @Param userId query int false "Author ID"
// @Success 200 {object} handlers.ReviewListResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /reviews [get]
func NewListReviewsHandler(svc ReviewLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), filters.ReviewFromQuery(r.URL.Query()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if list == nil {
			list = []*models.Review{}
		}

		writeJSON(w, http.StatusOK, ReviewListResponse{Reviews: list})
	}
}
