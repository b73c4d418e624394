package domain

import "time"

// ProviderStats holds the outcome of one provider within a collection run.
type ProviderStats struct {
	Provider      string
	Fetched       int
	New           int
	Skipped       int
	Errors        int
	QueryFailures int
	Published     int
	NotConfigured bool
}

// CollectStats holds statistics about collecting sources for one shoe.
type CollectStats struct {
	ShoeID    string
	Shoe      string
	Providers []ProviderStats
	Duration  time.Duration
}

func (s *CollectStats) TotalNew() int {
	total := 0
	for _, p := range s.Providers {
		total += p.New
	}
	return total
}
