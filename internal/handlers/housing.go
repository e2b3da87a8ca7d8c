package handlers

//go:generate mockgen -source=housing.go -destination=mock_housing.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// HousingCreator defines the interface that the service must implement.
type HousingCreator interface {
	Create(ctx context.Context, in models.HousingInput) (*models.Housing, error)
}

type HousingGetter interface {
	Get(ctx context.Context, id int64) (*models.Housing, error)
}

type HousingUpdater interface {
	Update(ctx context.Context, id, requesterID int64, p models.HousingPatch) (*models.Housing, error)
}

type HousingDeleter interface {
	Delete(ctx context.Context, id, requesterID int64) error
}

type HousingLister interface {
	List(ctx context.Context, f filters.HousingFilter) ([]*models.Housing, error)
}

type RecentChecker interface {
	IsRecent(ctx context.Context, id int64) (bool, error)
}

// CreateHousingRequest represents the JSON body for publishing a listing.
// Numbers may also be sent as strings.
// swagger:model CreateHousingRequest
type CreateHousingRequest struct {
	// required: true
	// default: Depto cerca del campus
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	// required: true
	// default: Av. Vicuña Mackenna 4860, Macul
	Address   string   `json:"address" validate:"required"`
	Price     *Decimal `json:"price" validate:"required" swaggertype:"number"`
	Rooms     *Integer `json:"rooms" validate:"required" swaggertype:"integer"`
	Bathrooms *Integer `json:"bathrooms" validate:"required" swaggertype:"integer"`
	Size      *Decimal `json:"size" validate:"required" swaggertype:"number"`
	Images    []string `json:"images"`
	Available *bool    `json:"available"`
	// required: true
	OwnerID Integer `json:"ownerId" validate:"required" swaggertype:"integer"`
}

// UpdateHousingRequest carries the fields to change and the requester.
// Field ranges are checked after the listing is found and the requester authorized.
// swagger:model UpdateHousingRequest
type UpdateHousingRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Address     *string   `json:"address"`
	Price       *Decimal  `json:"price" swaggertype:"number"`
	Rooms       *Integer  `json:"rooms" swaggertype:"integer"`
	Bathrooms   *Integer  `json:"bathrooms" swaggertype:"integer"`
	Size        *Decimal  `json:"size" swaggertype:"number"`
	Images      *[]string `json:"images"`
	Available   *bool     `json:"available"`
	// required: true
	OwnerID Integer `json:"ownerId" validate:"required" swaggertype:"integer"`
}

// OwnerRequest identifies the requester of a delete.
// swagger:model OwnerRequest
type OwnerRequest struct {
	OwnerID Integer `json:"ownerId" swaggertype:"integer"`
}

// HousingResponse wraps a single listing.
// swagger:model HousingResponse
type HousingResponse struct {
	Housing *models.Housing `json:"housing"`
}

// HousingListResponse wraps a list of listings, newest first.
// swagger:model HousingListResponse
type HousingListResponse struct {
	Housing []*models.Housing `json:"housing"`
}

// RecentResponse reports whether a listing is fresh.
// swagger:model RecentResponse
type RecentResponse struct {
	IsRecent bool `json:"isRecent"`
}

// NewCreateHousingHandler returns an HTTP handler for publishing a listing.
// @Summary Create housing
// @Description Publishes a listing. The owner must exist with the owner type and the address must be resolvable.
// @Tags housing
// @Accept json
// @Produce json
// @Param request body handlers.CreateHousingRequest true "Listing"
// @Success 201 {object} handlers.HousingResponse
// @Failure 400 {object} handlers.ErrorResponse "invalid owner / invalid address"
// @Failure 502 {object} handlers.ErrorResponse "geocoding unavailable"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /housing [post]
func NewCreateHousingHandler(svc HousingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateHousingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		h, err := svc.Create(r.Context(), models.HousingInput{
			Title:       req.Title,
			Description: req.Description,
			Address:     req.Address,
			Price:       float64(*req.Price),
			Rooms:       int(*req.Rooms),
			Bathrooms:   int(*req.Bathrooms),
			Size:        float64(*req.Size),
			Images:      req.Images,
			Available:   req.Available,
			OwnerID:     int64(req.OwnerID),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, HousingResponse{Housing: h})
	}
}

// NewGetHousingHandler returns an HTTP handler that reads one listing.
// @Summary Get housing
// @Tags housing
// @Produce json
// @Param id path int true "Housing ID"
// @Success 200 {object} handlers.HousingResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /housing/{id} [get]
func NewGetHousingHandler(svc HousingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		h, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, HousingResponse{Housing: h})
	}
}

// NewUpdateHousingHandler returns an HTTP handler for partial listing updates.
// @Summary Update housing
// @Description Only the owner may update. Absent fields keep their value.
// @Tags housing
// @Accept json
// @Produce json
// @Param id path int true "Housing ID"
// @Param request body handlers.UpdateHousingRequest true "Fields to change"
// @Success 200 {object} handlers.HousingResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "not authorized"
// @Failure 404 {object} handlers.ErrorResponse
// @Router /housing/{id} [put]
func NewUpdateHousingHandler(svc HousingUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req UpdateHousingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		h, err := svc.Update(r.Context(), id, int64(req.OwnerID), models.HousingPatch{
			Title:       req.Title,
			Description: req.Description,
			Address:     req.Address,
			Price:       decimalPtr(req.Price),
			Rooms:       intPtr(req.Rooms),
			Bathrooms:   intPtr(req.Bathrooms),
			Size:        decimalPtr(req.Size),
			Images:      req.Images,
			Available:   req.Available,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, HousingResponse{Housing: h})
	}
}

// NewDeleteHousingHandler returns an HTTP handler that removes a listing.
// The requester comes from the body or the ownerId query parameter.
// @Summary Delete housing
// @Tags housing
// @Accept json
// @Param id path int true "Housing ID"
// @Param ownerId query int false "Requester id when no body is sent"
// @Param request body handlers.OwnerRequest false "Requester"
// @Success 204
// @Failure 403 {object} handlers.ErrorResponse "not authorized"
// @Failure 404 {object} handlers.ErrorResponse
// @Router /housing/{id} [delete]
func NewDeleteHousingHandler(svc HousingDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		requesterID := queryID(r, "ownerId")
		if r.ContentLength != 0 {
			var req OwnerRequest
			if err := decodeRequest(r, &req); err != nil {
				writeError(w, r, err)
				return
			}
			if req.OwnerID != 0 {
				requesterID = int64(req.OwnerID)
			}
		}

		if err := svc.Delete(r.Context(), id, requesterID); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewListHousingHandler returns an HTTP handler for the filtered listing search.
// Malformed filter values are ignored.
// @Summary List housing
// @Tags housing
// @Produce json
// @Param available query bool false "Availability"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minRooms query int false "Minimum rooms"
// @Param maxRooms query int false "Maximum rooms"
// @Param minBathrooms query int false "Minimum bathrooms"
// @Param maxBathrooms query int false "Maximum bathrooms"
// @Param address query string false "Address substring, case insensitive"
// @Success 200 {object} handlers.HousingListResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /housing [get]
func NewListHousingHandler(svc HousingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), filters.HousingFromQuery(r.URL.Query()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if list == nil {
			list = []*models.Housing{}
		}

		writeJSON(w, http.StatusOK, HousingListResponse{Housing: list})
	}
}

// NewIsRecentHousingHandler returns an HTTP handler reporting whether a
// listing was published in the last 30 minutes.
// @Summary Is housing recent
// @Tags housing
// @Produce json
// @Param id path int true "Housing ID"
// @Success 200 {object} handlers.RecentResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /housing/{id}/recent [get]
func NewIsRecentHousingHandler(svc RecentChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}

		recent, err := svc.IsRecent(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, RecentResponse{IsRecent: recent})
	}
}
