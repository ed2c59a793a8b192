package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

// CartRepository backs the authenticated cart. At most one row exists per
// (userID, productID); the adapter enforces that shape on writes.
type CartRepository interface {
	GetItem(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	Upsert(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, userID, productID string) error
	DeleteAll(ctx context.Context, userID string) error
}

// GuestCartRepository backs the pre-authentication cart: one JSON blob per
// guest token, expiring after the configured TTL.
type GuestCartRepository interface {
	Get(ctx context.Context, token string) ([]entity.GuestCartItem, error)
	Save(ctx context.Context, token string, items []entity.GuestCartItem) error
	Delete(ctx context.Context, token string) error
}
