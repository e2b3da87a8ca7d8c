package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/student-housing/internal/models"
)

// CredentialRepository stores password hashes for the local identity provider.
type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// GetByEmail returns nil when no credential has the email.
func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	const query = `
		SELECT external_id, email, name, password_hash, email_verified, created_at
		FROM credentials
		WHERE LOWER(email) = LOWER($1)`

	var c models.Credential
	err := r.db.GetContext(ctx, &c, query, email)
	logQuery(query, []any{email}, c.ExternalID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save inserts the credential. A taken email yields errs.ErrConflict.
func (r *CredentialRepository) Save(ctx context.Context, c *models.Credential) error {
	const query = `
		INSERT INTO credentials (external_id, email, name, password_hash, email_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`
	args := []any{c.ExternalID, c.Email, c.Name, c.PasswordHash, c.EmailVerified}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	// The hash is left out of the log.
	logQuery(query, []any{c.ExternalID, c.Email, c.Name, c.EmailVerified}, rowsAffected, err)

	return mapPgError(err)
}
