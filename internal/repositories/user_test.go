package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/models"
)

var userRowColumns = []string{"id", "name", "email", "external_id", "role", "created_at", "updated_at"}

func TestUserReadRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)
	now := time.Now()
	ctx := context.Background()

	t.Run("ByID", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(10, "Olga", "olga@mail.com", "local|1", "owner", now, now))

		u, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, models.RoleOwner, u.Role)
		assert.Equal(t, "local|1", u.ExternalID)
	})

	t.Run("ByEmail", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
			WithArgs("Ana@uc.cl").
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(20, "Ana", "ana@uc.cl", "local|2", "student", now, now))

		u, err := repo.GetByEmail(ctx, "Ana@uc.cl")
		require.NoError(t, err)
		assert.Equal(t, int64(20), u.ID)
	})

	t.Run("ByExternalIDMissing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE external_id = $1")).
			WithArgs("auth0|nobody").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		u, err := repo.GetByExternalID(ctx, "auth0|nobody")
		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Ana", "ana@uc.cl", "local|2", models.RoleStudent).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(20, "Ana", "ana@uc.cl", "local|2", "student", now, now))

	u, err := repo.Create(context.Background(), &models.User{Name: "Ana", Email: "ana@uc.cl", ExternalID: "local|2", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, int64(20), u.ID)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err = repo.Create(context.Background(), &models.User{Name: "Ana", Email: "ana@uc.cl", ExternalID: "local|3", Role: models.RoleStudent})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestUserWriteRepository_UpdateByExternalID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db)
	now := time.Now()
	patch := models.UserPatch{Email: "olga@mail.com", Name: "Olga P.", Role: models.RoleOwner}

	mock.ExpectQuery("UPDATE users").
		WithArgs("olga@mail.com", "Olga P.", models.RoleOwner, "local|1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(10, "Olga P.", "olga@mail.com", "local|1", "owner", now, now))

	u, err := repo.UpdateByExternalID(context.Background(), "local|1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Olga P.", u.Name)

	mock.ExpectQuery("UPDATE users").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	u, err = repo.UpdateByExternalID(context.Background(), "local|404", patch)
	assert.NoError(t, err)
	assert.Nil(t, u)
}
