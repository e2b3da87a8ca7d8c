package handlers

//go:generate mockgen -source=upload.go -destination=mock_upload.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/models"
)

// UploadPresigner defines the interface that the upload service must implement.
type UploadPresigner interface {
	Presign(ctx context.Context, clientKey, filename, contentType string) (*models.Upload, error)
}

// PresignRequest describes the file about to be uploaded.
// swagger:model PresignRequest
type PresignRequest struct {
	// required: true
	// default: departamento.jpg
	Filename string `json:"filename" validate:"required"`
	// default: image/jpeg
	ContentType string `json:"contentType"`
}

// NewPresignHandler returns an HTTP handler issuing presigned upload forms.
// @Summary Presign upload
// @Description Returns a form the client posts straight to object storage, plus the final file URL.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body handlers.PresignRequest true "File"
// @Success 200 {object} models.Upload
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 429 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /s3/presignedpost [post]
func NewPresignHandler(svc UploadPresigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PresignRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		upload, err := svc.Presign(r.Context(), clientKey(r), req.Filename, req.ContentType)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, upload)
	}
}
