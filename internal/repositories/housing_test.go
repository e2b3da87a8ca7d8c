package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/models"
)

var housingRowColumns = []string{
	"id", "title", "description", "address", "latitude", "longitude", "price", "rooms",
	"bathrooms", "size", "images", "available", "owner_id", "created_at", "updated_at",
	"owner_name", "owner_email",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestHousingListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   filters.HousingFilter
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:   "no filter",
			filter: filters.NewHousingBuilder().Build(),
			contains: []string{
				"FROM housing h JOIN users u ON u.id = h.owner_id",
				"ORDER BY h.created_at DESC, h.id DESC",
			},
			absent: []string{"WHERE"},
			args:   nil,
		},
		{
			name: "every field",
			filter: filters.NewHousingBuilder().
				Available(true).
				MinPrice(100).MaxPrice(500).
				MinRooms(1).
				MaxBathrooms(2).
				Address("provi_dencia").
				Build(),
			contains: []string{
				"WHERE h.available = $1",
				"h.price >= $2",
				"h.price <= $3",
				"h.rooms >= $4",
				"h.bathrooms <= $5",
				"h.address ILIKE $6",
			},
			absent: []string{"h.rooms <=", "h.bathrooms >="},
			args:   []any{true, 100.0, 500.0, 1, 2, `%provi\_dencia%`},
		},
		{
			name:     "zero max is kept",
			filter:   filters.NewHousingBuilder().MaxPrice(0).Build(),
			contains: []string{"WHERE h.price <= $1"},
			args:     []any{0.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := housingListQuery(tt.filter)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, query, c)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, query, a)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestHousingReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingReadRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM housing h JOIN users u ON u.id = h.owner_id WHERE h.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(housingRowColumns).AddRow(
			1, "Depto", "Luminoso", "Av. Matta 100", -33.45, -70.65, 300.0, 2,
			1, 45.5, "{a.jpg,b.jpg}", true, 10, now, now,
			"Olga", "olga@mail.com",
		))

	h, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Depto", h.Title)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, h.Images)
	require.NotNil(t, h.Latitude)
	assert.Equal(t, -33.45, *h.Latitude)
	assert.Equal(t, &models.UserSummary{ID: 10, Name: "Olga", Email: "olga@mail.com"}, h.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHousingReadRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingReadRepository(db)

	mock.ExpectQuery("FROM housing h").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(housingRowColumns))

	h, err := repo.GetByID(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, h)
}

func TestHousingReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingReadRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE h.available = $1 ORDER BY h.created_at DESC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(housingRowColumns).
			AddRow(2, "Nuevo", "", "Calle 2", nil, nil, 200.0, 1, 1, 30.0, "{}", true, 10, now, now, "Olga", "olga@mail.com").
			AddRow(1, "Viejo", "", "Calle 1", nil, nil, 100.0, 1, 1, 30.0, "{}", true, 10, now.Add(-time.Hour), now, "Olga", "olga@mail.com"))

	list, err := repo.List(context.Background(), filters.NewHousingBuilder().Available(true).Build())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Nil(t, list[0].Latitude)
	assert.Equal(t, []string{}, list[0].Images)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHousingWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingWriteRepository(db)
	now := time.Now()
	lat, lng := -33.45, -70.65

	mock.ExpectQuery(regexp.QuoteMeta("WITH h AS ( INSERT INTO housing")).
		WillReturnRows(sqlmock.NewRows(housingRowColumns).AddRow(
			5, "Depto", "", "Av. Matta 100", lat, lng, 300.0, 2, 1, 45.0, "{a.jpg}", true, 10, now, now, "Olga", "olga@mail.com",
		))

	h, err := repo.Create(context.Background(), &models.Housing{
		Title: "Depto", Address: "Av. Matta 100", Latitude: &lat, Longitude: &lng,
		Price: 300, Rooms: 2, Bathrooms: 1, Size: 45, Images: []string{"a.jpg"}, Available: true, OwnerID: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), h.ID)
	assert.Equal(t, "Olga", h.Owner.Name)
}

func TestHousingWriteRepository_Create_ForeignKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingWriteRepository(db)

	mock.ExpectQuery("INSERT INTO housing").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "housing_owner_id_fkey"})

	_, err := repo.Create(context.Background(), &models.Housing{Title: "x", OwnerID: 404})
	assert.ErrorIs(t, err, errs.ErrForeignKey)
}

func TestHousingWriteRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingWriteRepository(db)
	now := time.Now()
	price := 350.0

	mock.ExpectQuery(`WITH h AS \(UPDATE housing SET price = \$1, updated_at = NOW\(\) WHERE id = \$2 RETURNING \*\)`).
		WithArgs(350.0, int64(5)).
		WillReturnRows(sqlmock.NewRows(housingRowColumns).AddRow(
			5, "Depto", "", "Av. Matta 100", nil, nil, 350.0, 2, 1, 45.0, "{}", true, 10, now, now, "Olga", "olga@mail.com",
		))

	h, err := repo.Update(context.Background(), 5, models.HousingPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 350.0, h.Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHousingWriteRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHousingWriteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM housing WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 5))

	mock.ExpectExec("DELETE FROM housing").
		WithArgs(int64(6)).
		WillReturnError(errors.New("connection reset"))
	assert.Error(t, repo.Delete(context.Background(), 6))
}
