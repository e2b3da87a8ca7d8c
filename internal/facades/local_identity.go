package facades

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// LocalSubjectPrefix prefixes external ids issued by LocalProvider.
const LocalSubjectPrefix = "local|"

// CredentialStore persists local password hashes.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Credential, error)
	Save(ctx context.Context, c *models.Credential) error
}

// LocalProvider is an identity provider backed by bcrypt hashes in Postgres.
type LocalProvider struct {
	store CredentialStore
	cost  int
}

func NewLocalProvider(store CredentialStore) *LocalProvider {
	return &LocalProvider{store: store, cost: bcrypt.DefaultCost}
}

// ProvisionIdentity hashes the password and stores a new credential.
func (p *LocalProvider) ProvisionIdentity(ctx context.Context, email, password, name string) (*models.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	c := &models.Credential{
		ExternalID:    LocalSubjectPrefix + uuid.NewString(),
		Email:         strings.TrimSpace(email),
		Name:          name,
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
	if err := p.store.Save(ctx, c); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, ErrEmailRegistered
		}
		logger.Log.Errorw("failed to save credential", "email", email, "err", err)
		return nil, err
	}

	return &models.Identity{
		ExternalID:    c.ExternalID,
		Email:         c.Email,
		Name:          c.Name,
		EmailVerified: c.EmailVerified,
	}, nil
}

// VerifyCredentials checks the password against the stored hash.
func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (*models.Identity, error) {
	c, err := p.store.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get credential", "err", err)
		return nil, err
	}
	if c == nil {
		logger.Log.Warnw("unknown email", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		logger.Log.Warnw("invalid credentials", "email", email)
		return nil, ErrInvalidCredentials
	}

	return &models.Identity{
		ExternalID:    c.ExternalID,
		Email:         c.Email,
		Name:          c.Name,
		EmailVerified: c.EmailVerified,
	}, nil
}
