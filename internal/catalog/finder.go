package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"review_collector/internal/domain"
	"review_collector/internal/websearch"
)

const (
	defaultTrendingLimit = 30
	resultsPerQuery      = 10
	discoverySource      = "web_search"
)

var DiscoveryQueries = []string{
	"ランニングシューズ 2024 新作 おすすめ",
	"マラソンシューズ 2024 レビュー",
	"ランニングシューズ 人気ランキング",
	"トレーニングシューズ レビュー 比較",
	"best running shoes 2024 review",
}

type Finder struct {
	searcher websearch.Searcher
	queries  []string
	logger   *slog.Logger
}

func NewFinder(searcher websearch.Searcher, logger *slog.Logger) *Finder {
	return &Finder{
		searcher: searcher,
		queries:  DiscoveryQueries,
		logger:   logger.With("component", "finder"),
	}
}

// FindTrending extracts shoes mentioned in the results of the discovery
// queries. A failing query is skipped; an unconfigured searcher is an error.
func (f *Finder) FindTrending(ctx context.Context, limit int) ([]domain.ShoeRef, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	var (
		found []domain.ShoeRef
		seen  = make(map[string]bool)
	)

	for _, q := range f.queries {
		hits, err := f.searcher.Search(ctx, q, resultsPerQuery)
		if errors.Is(err, domain.ErrNotConfigured) {
			return nil, err
		}
		if err != nil {
			f.logger.Warn("discovery query failed", "query", q, "error", err)
			continue
		}

		for _, hit := range hits {
			for _, ref := range ExtractShoes(hit.Title+" "+hit.Snippet, discoverySource, hit.Link) {
				key := strings.ToLower(ref.Brand) + "\x00" + strings.ToLower(ref.ModelName)
				if seen[key] {
					continue
				}
				seen[key] = true
				found = append(found, ref)
			}
		}

		f.logger.Debug("discovery query done", "query", q, "hits", len(hits), "found", len(found))
	}

	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}
