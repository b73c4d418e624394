package domain

import "time"

const DefaultCategory = "ランニング"

// Shoe is a tracked subject. Brand and ModelName form the natural key,
// compared case-insensitively by the store.
type Shoe struct {
	ID            string    `db:"id"`
	Brand         string    `db:"brand"`
	ModelName     string    `db:"modelName"`
	Category      string    `db:"category"`
	ReleaseYear   *int      `db:"releaseYear"`
	OfficialPrice *int      `db:"officialPrice"`
	Description   *string   `db:"description"`
	Keywords      []string  `db:"-"`
	ImageURLs     []string  `db:"-"`
	CreatedAt     time.Time `db:"createdAt"`
	UpdatedAt     time.Time `db:"updatedAt"`
}

func (s Shoe) DisplayName() string {
	return s.Brand + " " + s.ModelName
}

// ShoeRef identifies a shoe before it exists in the store.
type ShoeRef struct {
	Brand     string
	ModelName string
	Category  string
	Year      *int
	Source    string
	SourceURL string
}

// Stats holds row counts reported by the config command.
type Stats struct {
	Shoes          int64
	CuratedSources int64
}
