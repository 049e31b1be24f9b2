package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"exhibition_crawler/internal/domain"
)

// Source is one crawlable gallery site.
type Source interface {
	ID() string
	Name() string
	Policy() domain.AdmissionPolicy
	FetchExhibitions(ctx context.Context) ([]domain.Exhibition, error)
}

type ExhibitionStore interface {
	Insert(ctx context.Context, ex *domain.Exhibition) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, ex *domain.Exhibition) error
	Close() error
}

type Exporter interface {
	Export(sourceID string, exhibitions []domain.Exhibition) error
}
