package domain

import "time"

// SourceType is the closed set of curated source categories.
type SourceType string

const (
	SourceOfficial    SourceType = "OFFICIAL"
	SourceMarketplace SourceType = "MARKETPLACE"
	SourceSNS         SourceType = "SNS"
	SourceVideo       SourceType = "VIDEO"
	SourceArticle     SourceType = "ARTICLE"
	SourceCommunity   SourceType = "COMMUNITY"
)

func (t SourceType) Valid() bool {
	switch t {
	case SourceOfficial, SourceMarketplace, SourceSNS, SourceVideo, SourceArticle, SourceCommunity:
		return true
	}
	return false
}

type Status string

const (
	StatusPublished Status = "PUBLISHED"
	StatusDraft     Status = "DRAFT"
)

// ExcerptLimit bounds every stored excerpt. Only a preview of third-party
// content is kept; readers follow URL for the full post.
const ExcerptLimit = 200

// CuratedSource is one discovered mention of a shoe. (ShoeID, URL) is unique.
type CuratedSource struct {
	ID           string
	ShoeID       string
	Type         SourceType
	Platform     string
	Title        string
	URL          string
	Author       *string
	Excerpt      *string
	ThumbnailURL *string
	Language     string
	Country      string
	Reliability  float64
	Metadata     map[string]any
	Status       Status
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
