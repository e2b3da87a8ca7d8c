package handlers

//go:generate mockgen -source=health.go -destination=mock_health.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/logger"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse reports the database status.
// swagger:model HealthResponse
type HealthResponse struct {
	Data bool `json:"data"`
}

// NewDBHealthHandler returns an HTTP handler that pings the database.
// @Summary Database health
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Failure 500 {object} handlers.HealthResponse
// @Router /dbhealth [get]
func NewDBHealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Log.Errorw("database ping failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, HealthResponse{Data: false})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Data: true})
	}
}
