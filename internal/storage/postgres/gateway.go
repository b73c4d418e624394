package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"review_collector/internal/domain"
)

// Gateway is the persistence boundary of the collector. Every write runs in
// its own transaction; the unique indexes, not in-process state, decide
// idempotency.
type Gateway struct {
	db           *sqlx.DB
	tm           *TransactionManager
	shoes        *ShoeStore
	sources      *SourceStore
	queryTimeout time.Duration
	logger       *slog.Logger
}

type Option func(*Gateway)

// WithQueryTimeout bounds every Gateway call. Zero or negative disables the
// bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.queryTimeout = d
	}
}

func NewGateway(db *sqlx.DB, logger *slog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		db:           db,
		tm:           NewTransactionManager(db),
		shoes:        NewShoeStore(db),
		sources:      NewSourceStore(db),
		queryTimeout: DefaultQueryTimeout,
		logger:       logger.With("component", "gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.queryTimeout)
}

func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()
	return g.db.PingContext(ctx)
}

// EnsureShoe returns the id of the shoe with this brand and model, creating
// it when absent. Losing an insert race to another writer is not an error.
func (g *Gateway) EnsureShoe(ctx context.Context, ref domain.ShoeRef) (string, bool, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	existing, err := g.shoes.FindByBrandModel(ctx, ref.Brand, ref.ModelName)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", false, err
	}

	shoe := &domain.Shoe{
		Brand:       ref.Brand,
		ModelName:   ref.ModelName,
		Category:    ref.Category,
		ReleaseYear: ref.Year,
	}

	var id string
	err = g.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var createErr error
		id, createErr = g.shoes.Create(ctx, shoe)
		return createErr
	})
	if errors.Is(err, domain.ErrDuplicate) {
		g.logger.Debug("shoe created concurrently, re-reading", "brand", ref.Brand, "model", ref.ModelName)
		existing, err := g.shoes.FindByBrandModel(ctx, ref.Brand, ref.ModelName)
		if err != nil {
			return "", false, fmt.Errorf("re-read shoe: %w", err)
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// CreateShoe inserts an explicitly added shoe. Unlike EnsureShoe it reports
// domain.ErrDuplicate.
func (g *Gateway) CreateShoe(ctx context.Context, shoe *domain.Shoe) (string, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	var id string
	err := g.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var createErr error
		id, createErr = g.shoes.Create(ctx, shoe)
		return createErr
	})
	return id, err
}

// RecordSource inserts src unless a row with the same shoe and URL exists.
// The boolean is false for that no-op case, with a nil error.
func (g *Gateway) RecordSource(ctx context.Context, src *domain.CuratedSource) (string, bool, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	var id string
	err := g.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := g.sources.Exists(ctx, src.ShoeID, src.URL)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		id, err = g.sources.Insert(ctx, src)
		return err
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (g *Gateway) ListSources(ctx context.Context, shoeID string) ([]domain.CuratedSource, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	return g.sources.ListPublished(ctx, shoeID)
}

func (g *Gateway) ListShoes(ctx context.Context) ([]domain.Shoe, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	return g.shoes.List(ctx)
}

func (g *Gateway) GetShoe(ctx context.Context, id string) (*domain.Shoe, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	return g.shoes.GetByID(ctx, id)
}

func (g *Gateway) FindShoe(ctx context.Context, brand, model string) (*domain.Shoe, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	return g.shoes.FindByBrandModel(ctx, brand, model)
}

func (g *Gateway) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := g.bound(ctx)
	defer cancel()

	var (
		stats domain.Stats
		err   error
	)
	if stats.Shoes, err = g.shoes.Count(ctx); err != nil {
		return stats, err
	}
	if stats.CuratedSources, err = g.sources.Count(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
