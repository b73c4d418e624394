package collector

//go:generate mockgen -source=collector.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"review_collector/internal/domain"
	"review_collector/internal/query"
)

// Adapter is one external source. Search returns normalized records for a
// single query; errors are reported to the Aggregator, which never lets them
// abort a collection.
type Adapter interface {
	Name() string
	Profile() query.Profile
	Search(ctx context.Context, q string, maxResults int, opts domain.SearchOptions) ([]domain.Record, error)
}

// Result is the merged output of one adapter for one shoe.
type Result struct {
	Records       []domain.Record
	Queries       int
	Failures      int
	NotConfigured bool
}

type Aggregator struct {
	logger *slog.Logger
}

func NewAggregator(logger *slog.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Collect runs every query variant of the adapter's profile, keeps the first
// record seen for each natural key, ranks by popularity and truncates.
func (a *Aggregator) Collect(ctx context.Context, shoe domain.Shoe, adapter Adapter, maxResults int, opts domain.SearchOptions) Result {
	profile := adapter.Profile()
	logger := a.logger.With("provider", adapter.Name(), "shoe", shoe.DisplayName())

	var (
		result  Result
		batches [][]domain.Record
	)

	for _, q := range profile.Formulate(shoe.Brand, shoe.ModelName) {
		if ctx.Err() != nil {
			logger.Warn("collection interrupted", "error", ctx.Err())
			break
		}

		result.Queries++
		records, err := adapter.Search(ctx, q, profile.PerQuery(maxResults), opts)
		if errors.Is(err, domain.ErrNotConfigured) {
			logger.Warn("provider not configured, skipping")
			result.NotConfigured = true
			break
		}
		if err != nil {
			logger.Warn("provider query failed", "query", q, "error", err)
			result.Failures++
			continue
		}

		logger.Debug("provider query done", "query", q, "records", len(records))
		batches = append(batches, records)
	}

	result.Records = Merge(batches, maxResults)
	return result
}

// Merge de-duplicates batches by natural key, first occurrence winning, then
// sorts by popularity descending (stable, so ties keep discovery order) and
// truncates to maxResults. Records without a key are dropped.
func Merge(batches [][]domain.Record, maxResults int) []domain.Record {
	seen := make(map[string]struct{})
	var merged []domain.Record

	for _, batch := range batches {
		for _, r := range batch {
			if r.Key == "" {
				continue
			}
			if _, dup := seen[r.Key]; dup {
				continue
			}
			seen[r.Key] = struct{}{}
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})

	if maxResults >= 0 && len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}
