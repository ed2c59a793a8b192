package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error)
}

type PurchaseRequestRepository interface {
	Create(ctx context.Context, req *entity.PurchaseRequest) error
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.PurchaseRequest, int64, error)
}
