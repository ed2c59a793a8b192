package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

// ProductFilter narrows List/Search results. Zero values mean "no filter";
// Status defaults to active at the usecase layer.
type ProductFilter struct {
	Category string
	CampusID string
	Status   string
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter, sort string, limit, offset int) ([]*entity.Product, int64, error)
	Search(ctx context.Context, query string, filter ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStatus(ctx context.Context, id string, status string) error
	IncrementViews(ctx context.Context, id string) error
}
