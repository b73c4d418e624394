package domain

import "time"

// Record is the normalized shape every provider adapter produces. Key is the
// natural key recovered from the provider's identifiers or the result URL.
type Record struct {
	Key          string
	Platform     string
	Kind         string
	Title        string
	URL          string
	Author       string
	Snippet      string
	ThumbnailURL string
	Popularity   int64
	PublishedAt  *time.Time
	Extra        map[string]any
}

// SearchOptions carries per-call hints. Zero values mean provider defaults.
type SearchOptions struct {
	Language       string
	Region         string
	Order          string
	TimeWindow     string
	PublishedAfter *time.Time
}
