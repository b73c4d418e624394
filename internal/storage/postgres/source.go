package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"review_collector/internal/domain"
)

type sourceRow struct {
	ID           string         `db:"id"`
	ShoeID       string         `db:"shoeId"`
	Type         string         `db:"type"`
	Platform     string         `db:"platform"`
	Title        string         `db:"title"`
	Excerpt      sql.NullString `db:"excerpt"`
	URL          string         `db:"url"`
	Author       sql.NullString `db:"author"`
	Language     string         `db:"language"`
	Country      string         `db:"country"`
	ThumbnailURL sql.NullString `db:"thumbnailUrl"`
	Reliability  float64        `db:"reliability"`
	Metadata     []byte         `db:"metadata"`
	Status       string         `db:"status"`
	Tags         pq.StringArray `db:"tags"`
	CreatedAt    time.Time      `db:"createdAt"`
	UpdatedAt    time.Time      `db:"updatedAt"`
}

func (r sourceRow) toDomain() (domain.CuratedSource, error) {
	src := domain.CuratedSource{
		ID:          r.ID,
		ShoeID:      r.ShoeID,
		Type:        domain.SourceType(r.Type),
		Platform:    r.Platform,
		Title:       r.Title,
		URL:         r.URL,
		Language:    r.Language,
		Country:     r.Country,
		Reliability: r.Reliability,
		Status:      domain.Status(r.Status),
		Tags:        []string(r.Tags),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Excerpt.Valid {
		src.Excerpt = &r.Excerpt.String
	}
	if r.Author.Valid {
		src.Author = &r.Author.String
	}
	if r.ThumbnailURL.Valid {
		src.ThumbnailURL = &r.ThumbnailURL.String
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &src.Metadata); err != nil {
			return src, fmt.Errorf("decode metadata of %s: %w", r.ID, err)
		}
	}
	return src, nil
}

type SourceStore struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStore {
	return &SourceStore{db: db}
}

func (s *SourceStore) Exists(ctx context.Context, shoeID, url string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM "curatedSources" WHERE "shoeId" = $1 AND url = $2)`
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists, query, shoeID, url); err != nil {
		return false, fmt.Errorf("check source: %w", err)
	}
	return exists, nil
}

// Insert stores src and returns the generated id. An existing (shoe, url)
// pair yields domain.ErrDuplicate.
func (s *SourceStore) Insert(ctx context.Context, src *domain.CuratedSource) (string, error) {
	query := `
		INSERT INTO "curatedSources" (
			id, "shoeId", type, platform, title, excerpt, url,
			author, language, country, "thumbnailUrl", reliability,
			metadata, status, tags, "createdAt", "updatedAt"
		) VALUES (
			gen_random_uuid()::text, $1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, NOW(), NOW()
		)
		RETURNING id`

	// jsonb is sent as text; nil leaves the column NULL.
	var metadata any
	if len(src.Metadata) > 0 {
		encoded, err := json.Marshal(src.Metadata)
		if err != nil {
			return "", fmt.Errorf("encode metadata: %w", err)
		}
		metadata = string(encoded)
	}

	status := src.Status
	if status == "" {
		status = domain.StatusPublished
	}

	var id string
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		src.ShoeID,
		string(src.Type),
		src.Platform,
		src.Title,
		src.Excerpt,
		src.URL,
		src.Author,
		src.Language,
		src.Country,
		src.ThumbnailURL,
		src.Reliability,
		metadata,
		string(status),
		pq.Array(nonNil(src.Tags)),
	).Scan(&id)

	if isUniqueViolation(err) {
		return "", domain.ErrDuplicate
	}
	if err != nil {
		return "", fmt.Errorf("insert source: %w", err)
	}
	return id, nil
}

// ListPublished orders by reliability, then newest first.
func (s *SourceStore) ListPublished(ctx context.Context, shoeID string) ([]domain.CuratedSource, error) {
	query := `
		SELECT id, "shoeId", type, platform, title, excerpt, url, author,
			language, country, "thumbnailUrl", reliability, metadata, status,
			tags, "createdAt", "updatedAt"
		FROM "curatedSources"
		WHERE "shoeId" = $1 AND status = $2
		ORDER BY reliability DESC, "createdAt" DESC`

	var rows []sourceRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, shoeID, string(domain.StatusPublished)); err != nil {
		return nil, fmt.Errorf("select sources: %w", err)
	}

	sources := make([]domain.CuratedSource, 0, len(rows))
	for _, r := range rows {
		src, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (s *SourceStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &n, `SELECT COUNT(*) FROM "curatedSources"`); err != nil {
		return 0, fmt.Errorf("count sources: %w", err)
	}
	return n, nil
}
