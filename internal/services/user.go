package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
	"github.com/sbilibin2017/student-housing/internal/policy"
)

var (
	ErrUserAlreadyExists = errs.Validation("user already exists")
	ErrInvalidUserType   = errs.Validation("invalid user type")
	ErrProfileNotFound   = errs.Validation("user not found")
	ErrUserNotFound      = errs.NotFound("user not found")
	ErrEmailNotVerified  = errs.Authorization("email not verified")
	ErrUserNotRegistered = errs.Upstream(http.StatusUnauthorized, "user not registered", nil)
)

// UserService handles registration, login and the profile.
type UserService struct {
	reader   UserReader
	writer   UserWriter
	identity IdentityProvider
	jwt      JWTGenerator
	domains  []string
}

// NewUserService creates a new UserService instance. Students must register
// with an email ending in one of domains.
func NewUserService(
	reader UserReader,
	writer UserWriter,
	identity IdentityProvider,
	jwt JWTGenerator,
	domains []string,
) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		identity: identity,
		jwt:      jwt,
		domains:  domains,
	}
}

// Register provisions the identity and stores the local user record.
func (svc *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	role, err := models.ParseRole(string(in.Role))
	if err != nil {
		return nil, ErrInvalidUserType
	}
	email := strings.TrimSpace(in.Email)
	if err := policy.CheckStudentEmail(role, email, svc.domains); err != nil {
		logger.Log.Warnw("student email outside institutional domains", "email", email)
		return nil, err
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warnw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	identity, err := svc.identity.ProvisionIdentity(ctx, email, in.Password, in.Name)
	if err != nil {
		logger.Log.Errorw("failed to provision identity", "email", email, "err", err)
		return nil, err
	}

	user, err := svc.writer.Create(ctx, &models.User{
		Name:       in.Name,
		Email:      email,
		ExternalID: identity.ExternalID,
		Role:       role,
	})
	if errors.Is(err, errs.ErrConflict) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "email", email, "err", err)
		return nil, err
	}

	logger.Log.Infow("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies the credentials with the identity provider and issues a
// session token for the matching local user.
func (svc *UserService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	identity, err := svc.identity.VerifyCredentials(ctx, email, password)
	if err != nil {
		logger.Log.Warnw("login rejected", "email", email, "err", err)
		return nil, err
	}
	if !identity.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	user, err := svc.reader.GetByExternalID(ctx, identity.ExternalID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "external_id", identity.ExternalID, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("identity without local user", "external_id", identity.ExternalID)
		return nil, ErrUserNotRegistered
	}

	token, err := svc.jwt.Generate(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	return &models.Session{Token: token, User: user}, nil
}

// Me returns the user behind a session.
func (svc *UserService) Me(ctx context.Context, externalID string) (*models.User, error) {
	user, err := svc.reader.GetByExternalID(ctx, externalID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "external_id", externalID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateMe overwrites the profile. This is the only path that changes the role.
func (svc *UserService) UpdateMe(ctx context.Context, externalID string, p models.UserPatch) (*models.User, error) {
	role, err := models.ParseRole(string(p.Role))
	if err != nil {
		return nil, ErrInvalidUserType
	}
	p.Role = role
	p.Email = strings.TrimSpace(p.Email)
	if err := policy.CheckStudentEmail(p.Role, p.Email, svc.domains); err != nil {
		return nil, err
	}

	user, err := svc.writer.UpdateByExternalID(ctx, externalID, p)
	if errors.Is(err, errs.ErrConflict) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to update user", "external_id", externalID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrProfileNotFound
	}
	return user, nil
}
