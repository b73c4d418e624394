package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"review_collector/internal/catalog"
	"review_collector/internal/domain"
)

type ImportStats struct {
	Created  int
	Existing int
	Errors   int
}

// ShoeService manages the tracked shoe list. finder may be nil when no web
// search is configured.
type ShoeService struct {
	gateway Gateway
	finder  Finder
	logger  *slog.Logger
}

func NewShoeService(gateway Gateway, finder Finder, logger *slog.Logger) *ShoeService {
	return &ShoeService{
		gateway: gateway,
		finder:  finder,
		logger:  logger,
	}
}

func (s *ShoeService) List(ctx context.Context) ([]domain.Shoe, error) {
	return s.gateway.ListShoes(ctx)
}

func (s *ShoeService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.gateway.Stats(ctx)
}

// Add creates a shoe. When it already exists the existing id is returned
// with created=false.
func (s *ShoeService) Add(ctx context.Context, brand, model, category string) (string, bool, error) {
	brand, model = strings.TrimSpace(brand), strings.TrimSpace(model)
	if brand == "" || model == "" {
		return "", false, errors.New("brand and model are required")
	}
	if category == "" {
		category = domain.DefaultCategory
	}

	id, err := s.gateway.CreateShoe(ctx, &domain.Shoe{Brand: brand, ModelName: model, Category: category})
	if errors.Is(err, domain.ErrDuplicate) {
		existing, findErr := s.gateway.FindShoe(ctx, brand, model)
		if findErr != nil {
			return "", false, fmt.Errorf("find existing shoe: %w", findErr)
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return "", false, err
	}

	s.logger.Info("shoe added", "shoe_id", id, "brand", brand, "model", model)
	return id, true, nil
}

// ImportPredefined ensures every predefined popular model exists.
func (s *ShoeService) ImportPredefined(ctx context.Context) ImportStats {
	return s.ensureAll(ctx, catalog.Predefined())
}

// Discover finds trending shoes and, when save is set, ensures they exist.
func (s *ShoeService) Discover(ctx context.Context, limit int, save bool) ([]domain.ShoeRef, ImportStats, error) {
	if s.finder == nil {
		return nil, ImportStats{}, domain.ErrNotConfigured
	}

	refs, err := s.finder.FindTrending(ctx, limit)
	if err != nil {
		return nil, ImportStats{}, err
	}
	if !save {
		return refs, ImportStats{}, nil
	}
	return refs, s.ensureAll(ctx, refs), nil
}

func (s *ShoeService) ensureAll(ctx context.Context, refs []domain.ShoeRef) ImportStats {
	var stats ImportStats
	for _, ref := range refs {
		if ctx.Err() != nil {
			break
		}
		_, created, err := s.gateway.EnsureShoe(ctx, ref)
		switch {
		case err != nil:
			s.logger.Error("failed to ensure shoe", "brand", ref.Brand, "model", ref.ModelName, "error", err)
			stats.Errors++
		case created:
			stats.Created++
		default:
			stats.Existing++
		}
	}

	s.logger.Info("shoes imported",
		"created", stats.Created,
		"existing", stats.Existing,
		"errors", stats.Errors,
	)
	return stats
}
