package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// housingColumns selects a listing aliased as h joined with its owner u.
const housingColumns = `h.id, h.title, h.description, h.address, h.latitude, h.longitude,
	h.price, h.rooms, h.bathrooms, h.size, h.images, h.available, h.owner_id,
	h.created_at, h.updated_at, u.name AS owner_name, u.email AS owner_email`

type housingRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Address     string         `db:"address"`
	Latitude    *float64       `db:"latitude"`
	Longitude   *float64       `db:"longitude"`
	Price       float64        `db:"price"`
	Rooms       int            `db:"rooms"`
	Bathrooms   int            `db:"bathrooms"`
	Size        float64        `db:"size"`
	Images      pq.StringArray `db:"images"`
	Available   bool           `db:"available"`
	OwnerID     int64          `db:"owner_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	OwnerName   string         `db:"owner_name"`
	OwnerEmail  string         `db:"owner_email"`
}

func (r housingRow) toModel() *models.Housing {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return &models.Housing{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Price:       r.Price,
		Rooms:       r.Rooms,
		Bathrooms:   r.Bathrooms,
		Size:        r.Size,
		Images:      images,
		Available:   r.Available,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Owner:       &models.UserSummary{ID: r.OwnerID, Name: r.OwnerName, Email: r.OwnerEmail},
	}
}

// withOwner wraps a data-modifying statement returning housing rows so the
// owner summary comes back in the same round trip.
func withOwner(statement string) string {
	return `WITH h AS (` + statement + `) SELECT ` + housingColumns + ` FROM h JOIN users u ON u.id = h.owner_id`
}

type HousingReadRepository struct {
	db *sqlx.DB
}

func NewHousingReadRepository(db *sqlx.DB) *HousingReadRepository {
	return &HousingReadRepository{db: db}
}

// GetByID returns nil when the listing does not exist.
func (r *HousingReadRepository) GetByID(ctx context.Context, id int64) (*models.Housing, error) {
	const query = `SELECT ` + housingColumns + ` FROM housing h JOIN users u ON u.id = h.owner_id WHERE h.id = $1`

	var row housingRow
	err := r.db.GetContext(ctx, &row, query, id)
	logQuery(query, []any{id}, row.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// List returns the listings matching f, newest first.
func (r *HousingReadRepository) List(ctx context.Context, f filters.HousingFilter) ([]*models.Housing, error) {
	query, args, err := housingListQuery(f)
	if err != nil {
		return nil, err
	}

	var rows []housingRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	logQuery(query, args, len(rows), err)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Housing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// housingListQuery translates a filter into SQL. Absent bounds add no clause.
func housingListQuery(f filters.HousingFilter) (string, []any, error) {
	q := psql.Select(housingColumns).
		From("housing h").
		Join("users u ON u.id = h.owner_id").
		OrderBy("h.created_at DESC", "h.id DESC")

	if v, ok := f.Available(); ok {
		q = q.Where(sq.Eq{"h.available": v})
	}
	q = whereRange(q, "h.price", f.Price())
	q = whereRange(q, "h.rooms", f.Rooms())
	q = whereRange(q, "h.bathrooms", f.Bathrooms())
	if a, ok := f.Address(); ok {
		q = q.Where(sq.ILike{"h.address": likePattern(a)})
	}

	return q.ToSql()
}

func whereRange[T filters.Number](q sq.SelectBuilder, column string, r filters.Range[T]) sq.SelectBuilder {
	if v, ok := r.Min(); ok {
		q = q.Where(sq.GtOrEq{column: v})
	}
	if v, ok := r.Max(); ok {
		q = q.Where(sq.LtOrEq{column: v})
	}
	return q
}

type HousingWriteRepository struct {
	db *sqlx.DB
}

func NewHousingWriteRepository(db *sqlx.DB) *HousingWriteRepository {
	return &HousingWriteRepository{db: db}
}

// Create inserts the listing and returns it with its owner summary.
func (r *HousingWriteRepository) Create(ctx context.Context, h *models.Housing) (*models.Housing, error) {
	query := withOwner(`
		INSERT INTO housing (title, description, address, latitude, longitude, price, rooms,
			bathrooms, size, images, available, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING *`)
	args := []any{
		h.Title, h.Description, h.Address, h.Latitude, h.Longitude, h.Price, h.Rooms,
		h.Bathrooms, h.Size, pq.StringArray(h.Images), h.Available, h.OwnerID,
	}

	var row housingRow
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, row.ID, err)
	if err != nil {
		return nil, mapPgError(err)
	}
	return row.toModel(), nil
}

// Update writes the non-nil fields of p. It returns nil when the listing
// does not exist.
func (r *HousingWriteRepository) Update(ctx context.Context, id int64, p models.HousingPatch) (*models.Housing, error) {
	set := map[string]any{"updated_at": sq.Expr("NOW()")}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Rooms != nil {
		set["rooms"] = *p.Rooms
	}
	if p.Bathrooms != nil {
		set["bathrooms"] = *p.Bathrooms
	}
	if p.Size != nil {
		set["size"] = *p.Size
	}
	if p.Images != nil {
		set["images"] = pq.StringArray(*p.Images)
	}
	if p.Available != nil {
		set["available"] = *p.Available
	}
	if p.Coordinates != nil {
		set["latitude"] = p.Coordinates.Latitude
		set["longitude"] = p.Coordinates.Longitude
	}

	update, args, err := psql.Update("housing").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, err
	}
	query := withOwner(update)

	var row housingRow
	err = r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, row.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapPgError(err)
	}
	return row.toModel(), nil
}

// Delete removes the listing. Reviews go with it through ON DELETE CASCADE.
func (r *HousingWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM housing WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
