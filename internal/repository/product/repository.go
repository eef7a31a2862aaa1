package product

import (
	"context"

	"mrhook/internal/domain"
)

// ListFilter narrows the catalog listing. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Search   string
	MinPrice *int64
	MaxPrice *int64
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
