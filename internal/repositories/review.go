package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/student-housing/internal/filters"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// reviewColumns selects a review aliased as r with its author u and housing h.
const reviewColumns = `r.id, r.user_id, r.housing_id, r.score, r.comment, r.created_at,
	u.name AS author_name, u.email AS author_email,
	h.title AS housing_title, h.address AS housing_address`

const reviewJoins = ` JOIN users u ON u.id = r.user_id JOIN housing h ON h.id = r.housing_id`

type reviewRow struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	HousingID      int64     `db:"housing_id"`
	Score          int       `db:"score"`
	Comment        string    `db:"comment"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorName     string    `db:"author_name"`
	AuthorEmail    string    `db:"author_email"`
	HousingTitle   string    `db:"housing_title"`
	HousingAddress string    `db:"housing_address"`
}

func (r reviewRow) toModel() *models.Review {
	return &models.Review{
		ID:        r.ID,
		UserID:    r.UserID,
		HousingID: r.HousingID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		User:      &models.UserSummary{ID: r.UserID, Name: r.AuthorName, Email: r.AuthorEmail},
		Housing:   &models.HousingSummary{ID: r.HousingID, Title: r.HousingTitle, Address: r.HousingAddress},
	}
}

func withSummaries(statement string) string {
	return `WITH r AS (` + statement + `) SELECT ` + reviewColumns + ` FROM r` + reviewJoins
}

type ReviewReadRepository struct {
	db *sqlx.DB
}

func NewReviewReadRepository(db *sqlx.DB) *ReviewReadRepository {
	return &ReviewReadRepository{db: db}
}

// GetByID returns nil when the review does not exist.
func (r *ReviewReadRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews r` + reviewJoins + ` WHERE r.id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUserAndHousing returns the review a user left on a housing, or nil.
func (r *ReviewReadRepository) GetByUserAndHousing(ctx context.Context, userID, housingID int64) (*models.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews r` + reviewJoins + ` WHERE r.user_id = $1 AND r.housing_id = $2`
	return r.getOne(ctx, query, userID, housingID)
}

func (r *ReviewReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.Review, error) {
	var row reviewRow
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, row.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// List returns the reviews matching f, newest first.
func (r *ReviewReadRepository) List(ctx context.Context, f filters.ReviewFilter) ([]*models.Review, error) {
	q := psql.Select(reviewColumns).
		From("reviews r").
		Join("users u ON u.id = r.user_id").
		Join("housing h ON h.id = r.housing_id").
		OrderBy("r.created_at DESC", "r.id DESC")
	if id, ok := f.HousingID(); ok {
		q = q.Where(sq.Eq{"r.housing_id": id})
	}
	if id, ok := f.UserID(); ok {
		q = q.Where(sq.Eq{"r.user_id": id})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []reviewRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	logQuery(query, args, len(rows), err)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

type ReviewWriteRepository struct {
	db *sqlx.DB
}

func NewReviewWriteRepository(db *sqlx.DB) *ReviewWriteRepository {
	return &ReviewWriteRepository{db: db}
}

// Create inserts the review. A second review of the same housing by the
// same user yields errs.ErrConflict.
func (r *ReviewWriteRepository) Create(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	query := withSummaries(`
		INSERT INTO reviews (user_id, housing_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING *`)
	args := []any{in.UserID, in.HousingID, in.Score, in.Comment}

	var row reviewRow
	err := r.db.GetContext(ctx, &row, query, args...)
	logQuery(query, args, row.ID, err)
	if err != nil {
		return nil, mapPgError(err)
	}
	return row.toModel(), nil
}

// Update writes the non-nil fields of p. It returns nil when the review
// does not exist.
func (r *ReviewWriteRepository) Update(ctx context.Context, id int64, p models.ReviewPatch) (*models.Review, error) {
	set := map[string]any{}
	if p.Score != nil {
		set["score"] = *p.Score
	}
	if p.Comment != nil {
		set["comment"] = *p.Comment
	}
	if len(set) == 0 {
		return nil, errors.New("review update without fields")
	}

	update, args, err := psql.Update("reviews").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, err
	}
	query := withSummaries(update)

	var row reviewRow
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

func (r *ReviewWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM reviews WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
