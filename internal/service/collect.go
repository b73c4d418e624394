package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"review_collector/internal/collector"
	"review_collector/internal/config"
	"review_collector/internal/domain"
)

type CollectService struct {
	gateway    Gateway
	registry   *Registry
	aggregator *collector.Aggregator
	publisher  Publisher
	logger     *slog.Logger
	config     config.CollectConfig
}

// NewCollectService wires a collection pipeline. publisher may be nil.
func NewCollectService(
	gateway Gateway,
	registry *Registry,
	aggregator *collector.Aggregator,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.CollectConfig,
) *CollectService {
	return &CollectService{
		gateway:    gateway,
		registry:   registry,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     logger,
		config:     cfg,
	}
}

func validateShoeID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

// CollectShoe gathers sources for one shoe from the named providers, one
// provider after another. Empty providers or a non-positive maxResults fall
// back to the configured defaults.
func (s *CollectService) CollectShoe(ctx context.Context, shoeID string, providers []string, maxResults int) (*domain.CollectStats, error) {
	if err := validateShoeID(shoeID); err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		providers = s.config.Sources
	}
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}

	resolved, err := s.registry.Resolve(providers)
	if err != nil {
		return nil, err
	}

	shoe, err := s.gateway.GetShoe(ctx, shoeID)
	if err != nil {
		return nil, fmt.Errorf("get shoe %s: %w", shoeID, err)
	}

	return s.collect(ctx, *shoe, resolved, maxResults), nil
}

func (s *CollectService) collect(ctx context.Context, shoe domain.Shoe, providers []NamedProvider, maxResults int) *domain.CollectStats {
	startTime := time.Now()
	logger := s.logger.With("shoe_id", shoe.ID, "shoe", shoe.DisplayName())
	logger.Info("starting collection", "providers", len(providers), "max_results", maxResults)

	stats := &domain.CollectStats{
		ShoeID: shoe.ID,
		Shoe:   shoe.DisplayName(),
	}

	opts := domain.SearchOptions{
		Language: s.config.Language,
		Region:   s.config.Country,
	}

	for _, p := range providers {
		if ctx.Err() != nil {
			logger.Warn("collection interrupted", "error", ctx.Err())
			break
		}

		result := s.aggregator.Collect(ctx, shoe, p.Adapter, maxResults, opts)
		ps := domain.ProviderStats{
			Provider:      p.Name,
			Fetched:       len(result.Records),
			QueryFailures: result.Failures,
			NotConfigured: result.NotConfigured,
		}

		for _, record := range result.Records {
			s.store(ctx, logger, shoe, p, record, &ps)
		}

		logger.Info("provider done",
			"provider", p.Name,
			"fetched", ps.Fetched,
			"new", ps.New,
			"skipped", ps.Skipped,
			"errors", ps.Errors,
		)
		stats.Providers = append(stats.Providers, ps)
	}

	stats.Duration = time.Since(startTime)
	logger.Info("collection completed", "new", stats.TotalNew(), "duration", stats.Duration)

	return stats
}

func (s *CollectService) store(ctx context.Context, logger *slog.Logger, shoe domain.Shoe, p NamedProvider, record domain.Record, ps *domain.ProviderStats) {
	src := s.toCuratedSource(shoe.ID, p.Provider, record)

	id, inserted, err := s.gateway.RecordSource(ctx, &src)
	if err != nil {
		logger.Error("failed to record source", "provider", p.Name, "url", src.URL, "error", err)
		ps.Errors++
		return
	}
	if !inserted {
		logger.Debug("source already recorded", "provider", p.Name, "url", src.URL)
		ps.Skipped++
		return
	}

	ps.New++
	src.ID = id

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, shoe, src); err != nil {
		logger.Warn("failed to publish source", "source_id", id, "error", err)
		ps.Errors++
		return
	}
	ps.Published++
}

func (s *CollectService) toCuratedSource(shoeID string, p Provider, r domain.Record) domain.CuratedSource {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = r.URL
	}

	var metadata map[string]any
	if len(r.Extra) > 0 {
		metadata = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			metadata[k] = v
		}
	}

	return domain.CuratedSource{
		ShoeID:       shoeID,
		Type:         p.Type,
		Platform:     p.Platform,
		Title:        title,
		URL:          r.URL,
		Author:       domain.OptionalString(r.Author),
		Excerpt:      domain.OptionalString(domain.Preview(r.Snippet, domain.ExcerptLimit)),
		ThumbnailURL: domain.OptionalString(r.ThumbnailURL),
		Language:     s.config.Language,
		Country:      s.config.Country,
		Reliability:  p.Reliability,
		Metadata:     metadata,
		Status:       domain.StatusPublished,
	}
}

// CollectAll collects the newest limit shoes one after another. Provider
// failures are counted per shoe; only a canceled context ends the batch early.
func (s *CollectService) CollectAll(ctx context.Context, limit int, providers []string, maxResults int) ([]*domain.CollectStats, error) {
	if limit <= 0 {
		limit = s.config.BatchLimit
	}
	if len(providers) == 0 {
		providers = s.config.BatchSources
	}
	if maxResults <= 0 {
		maxResults = s.config.BatchMaxResults
	}

	resolved, err := s.registry.Resolve(providers)
	if err != nil {
		return nil, err
	}

	shoes, err := s.gateway.ListShoes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shoes: %w", err)
	}
	if len(shoes) > limit {
		shoes = shoes[:limit]
	}

	s.logger.Info("starting batch collection", "shoes", len(shoes), "max_results", maxResults)

	all := make([]*domain.CollectStats, 0, len(shoes))
	for _, shoe := range shoes {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		all = append(all, s.collect(ctx, shoe, resolved, maxResults))
	}
	return all, nil
}

// Run is one scheduled batch with the configured defaults.
func (s *CollectService) Run(ctx context.Context) error {
	all, err := s.CollectAll(ctx, 0, nil, 0)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	total := 0
	for _, st := range all {
		total += st.TotalNew()
	}
	s.logger.Info("scheduled batch done", "shoes", len(all), "new", total)
	return err
}

func (s *CollectService) ListSources(ctx context.Context, shoeID string) ([]domain.CuratedSource, error) {
	if err := validateShoeID(shoeID); err != nil {
		return nil, err
	}
	return s.gateway.ListSources(ctx, shoeID)
}
