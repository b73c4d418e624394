package websearch

import (
	"context"
	"errors"
	"log/slog"

	"review_collector/internal/domain"
)

// Fallback tries Primary first and Secondary when Primary fails or finds
// nothing.
type Fallback struct {
	Primary   Searcher
	Secondary Searcher
	logger    *slog.Logger
}

func NewFallback(primary, secondary Searcher, logger *slog.Logger) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary, logger: logger}
}

func (f *Fallback) Search(ctx context.Context, query string, num int) ([]Hit, error) {
	hits, err := f.Primary.Search(ctx, query, num)
	if err == nil && len(hits) > 0 {
		return hits, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotConfigured) {
		f.logger.Warn("primary web search failed, trying fallback", "query", query, "error", err)
	}

	if f.Secondary == nil {
		return hits, err
	}

	fallbackHits, fallbackErr := f.Secondary.Search(ctx, query, num)
	if errors.Is(fallbackErr, domain.ErrNotConfigured) {
		return hits, err
	}
	if fallbackErr != nil {
		return nil, fallbackErr
	}
	return fallbackHits, nil
}
