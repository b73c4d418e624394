package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"review_collector/internal/domain"
)

const shoeColumns = `id, brand, "modelName", category, "releaseYear", "officialPrice",
	description, keywords, "imageUrls", "createdAt", "updatedAt"`

type shoeRow struct {
	ID            string         `db:"id"`
	Brand         string         `db:"brand"`
	ModelName     string         `db:"modelName"`
	Category      string         `db:"category"`
	ReleaseYear   sql.NullInt64  `db:"releaseYear"`
	OfficialPrice sql.NullInt64  `db:"officialPrice"`
	Description   sql.NullString `db:"description"`
	Keywords      pq.StringArray `db:"keywords"`
	ImageURLs     pq.StringArray `db:"imageUrls"`
	CreatedAt     time.Time      `db:"createdAt"`
	UpdatedAt     time.Time      `db:"updatedAt"`
}

func (r shoeRow) toDomain() domain.Shoe {
	shoe := domain.Shoe{
		ID:        r.ID,
		Brand:     r.Brand,
		ModelName: r.ModelName,
		Category:  r.Category,
		Keywords:  []string(r.Keywords),
		ImageURLs: []string(r.ImageURLs),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ReleaseYear.Valid {
		shoe.ReleaseYear = domain.Ptr(int(r.ReleaseYear.Int64))
	}
	if r.OfficialPrice.Valid {
		shoe.OfficialPrice = domain.Ptr(int(r.OfficialPrice.Int64))
	}
	if r.Description.Valid {
		shoe.Description = &r.Description.String
	}
	return shoe
}

type ShoeStore struct {
	db *sqlx.DB
}

func NewShoeStore(db *sqlx.DB) *ShoeStore {
	return &ShoeStore{db: db}
}

// List returns every shoe, newest first.
func (s *ShoeStore) List(ctx context.Context) ([]domain.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes ORDER BY "createdAt" DESC`

	var rows []shoeRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query); err != nil {
		return nil, fmt.Errorf("select shoes: %w", err)
	}

	shoes := make([]domain.Shoe, 0, len(rows))
	for _, r := range rows {
		shoes = append(shoes, r.toDomain())
	}
	return shoes, nil
}

func (s *ShoeStore) GetByID(ctx context.Context, id string) (*domain.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes WHERE id = $1`
	return s.get(ctx, query, id)
}

// FindByBrandModel matches both parts case-insensitively.
func (s *ShoeStore) FindByBrandModel(ctx context.Context, brand, model string) (*domain.Shoe, error) {
	query := `SELECT ` + shoeColumns + ` FROM shoes
		WHERE LOWER(brand) = LOWER($1) AND LOWER("modelName") = LOWER($2)`
	return s.get(ctx, query, brand, model)
}

func (s *ShoeStore) get(ctx context.Context, query string, args ...any) (*domain.Shoe, error) {
	var row shoeRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select shoe: %w", err)
	}
	shoe := row.toDomain()
	return &shoe, nil
}

// Create inserts shoe and returns the generated id. A shoe with the same
// brand and model yields domain.ErrDuplicate.
func (s *ShoeStore) Create(ctx context.Context, shoe *domain.Shoe) (string, error) {
	query := `
		INSERT INTO shoes (
			id, brand, "modelName", category, "releaseYear", "officialPrice",
			description, keywords, "imageUrls", "createdAt", "updatedAt"
		) VALUES (
			gen_random_uuid()::text, $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
		RETURNING id`

	category := shoe.Category
	if category == "" {
		category = domain.DefaultCategory
	}

	var id string
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		shoe.Brand,
		shoe.ModelName,
		category,
		shoe.ReleaseYear,
		shoe.OfficialPrice,
		shoe.Description,
		pq.Array(nonNil(shoe.Keywords)),
		pq.Array(nonNil(shoe.ImageURLs)),
	).Scan(&id)

	if isUniqueViolation(err) {
		return "", domain.ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("insert shoe: %w", err)
	}
	return id, nil
}

func (s *ShoeStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &n, `SELECT COUNT(*) FROM shoes`); err != nil {
		return 0, fmt.Errorf("count shoes: %w", err)
	}
	return n, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
