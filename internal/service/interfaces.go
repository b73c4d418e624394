package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"review_collector/internal/domain"
)

type Gateway interface {
	EnsureShoe(ctx context.Context, ref domain.ShoeRef) (string, bool, error)
	CreateShoe(ctx context.Context, shoe *domain.Shoe) (string, error)
	FindShoe(ctx context.Context, brand, model string) (*domain.Shoe, error)
	GetShoe(ctx context.Context, id string) (*domain.Shoe, error)
	ListShoes(ctx context.Context) ([]domain.Shoe, error)
	RecordSource(ctx context.Context, src *domain.CuratedSource) (string, bool, error)
	ListSources(ctx context.Context, shoeID string) ([]domain.CuratedSource, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

type Publisher interface {
	Publish(ctx context.Context, shoe domain.Shoe, src domain.CuratedSource) error
	Close() error
}

type Finder interface {
	FindTrending(ctx context.Context, limit int) ([]domain.ShoeRef, error)
}
