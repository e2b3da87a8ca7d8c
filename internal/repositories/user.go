package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/student-housing/internal/models"
)

const userColumns = `id, name, email, external_id, role, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns nil when no user has the id.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserReadRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)
	logQuery(query, []any{arg}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts the user. A taken email or external id yields errs.ErrConflict.
func (r *UserWriteRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email, external_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns
	args := []any{u.Name, u.Email, u.ExternalID, u.Role}

	var created models.User
	err := r.db.GetContext(ctx, &created, query, args...)
	logQuery(query, args, created.ID, err)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &created, nil
}

// UpdateByExternalID overwrites the profile fields. It returns nil when the
// user does not exist.
func (r *UserWriteRepository) UpdateByExternalID(ctx context.Context, externalID string, p models.UserPatch) (*models.User, error) {
	const query = `
		UPDATE users
		SET email = $1, name = $2, role = $3, updated_at = NOW()
		WHERE external_id = $4
		RETURNING ` + userColumns
	args := []any{p.Email, p.Name, p.Role, externalID}

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, args...)
	logQuery(query, args, updated.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err)
	}
	return &updated, nil
}
