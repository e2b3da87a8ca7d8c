package handlers

//go:generate mockgen -source=user.go -destination=mock_user.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/middlewares"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
}

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
}

type ProfileGetter interface {
	Me(ctx context.Context, externalID string) (*models.User, error)
}

type ProfileUpdater interface {
	UpdateMe(ctx context.Context, externalID string, p models.UserPatch) (*models.User, error)
}

var errUnauthorized = &errs.Error{Kind: errs.KindAuthorization, Message: "unauthorized", Status: http.StatusUnauthorized}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// required: true
	// default: ana@uc.cl
	Email string `json:"email" validate:"required,email"`
	// required: true
	// default: Ana
	Name string `json:"name" validate:"required"`
	// required: true
	Password string `json:"password" validate:"required"`
	// student or owner (estudiante / propietario accepted)
	// required: true
	Type string `json:"type" validate:"required"`
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	Email string `json:"email" validate:"required,email"`
	// required: true
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest replaces the profile of the session user.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Type  string `json:"type" validate:"required"`
}

// UserResponse wraps a user.
// swagger:model UserResponse
type UserResponse struct {
	User *models.User `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Provisions the identity and stores the user. Students must use an institutional email.
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "user already exists / invalid email"
// @Failure 502 {object} handlers.ErrorResponse "identity provider unavailable"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.Register(r.Context(), models.RegisterInput{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
			Role:     models.Role(req.Type),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, UserResponse{User: user})
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Verifies the credentials with the identity provider and returns a session token
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.LoginRequest true "Login Request"
// @Success 200 {object} models.Session
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "invalid credentials"
// @Failure 403 {object} handlers.ErrorResponse "email not verified"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		session, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

// NewMeHandler returns an HTTP handler for the session user's profile.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/me [get]
// @Security BearerAuth
func NewMeHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, r, errUnauthorized)
			return
		}

		user, err := svc.Me(r.Context(), claims.ExternalID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{User: user})
	}
}

// NewUpdateMeHandler returns an HTTP handler replacing the session user's profile.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.UpdateUserRequest true "Profile"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "user not found / invalid email"
// @Failure 401 {object} handlers.ErrorResponse
// @Router /users/me [put]
// @Security BearerAuth
func NewUpdateMeHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, r, errUnauthorized)
			return
		}

		var req UpdateUserRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := svc.UpdateMe(r.Context(), claims.ExternalID, models.UserPatch{
			Email: req.Email,
			Name:  req.Name,
			Role:  models.Role(req.Type),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{User: user})
	}
}
