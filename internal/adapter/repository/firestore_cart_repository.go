package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	"campustrade/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) GetItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	query := r.client.Collection("cart_items").
		Where("userId", "==", userID).
		Where("productId", "==", productID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Cart item", nil)
		}
		return nil, errors.Internal("Failed to query cart item", err)
	}

	var item entity.CartItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse cart item data", err)
	}

	return &item, nil
}

func (r *firestoreCartRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	query := r.client.Collection("cart_items").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var items []*entity.CartItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate cart items", err)
		}

		var item entity.CartItem
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse cart item data", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *firestoreCartRepository) Upsert(ctx context.Context, item *entity.CartItem) error {
	now := time.Now()
	if item.ID == "" {
		item.ID = uuid.New().String()
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := r.client.Collection("cart_items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to save cart item", err)
	}

	return nil
}

func (r *firestoreCartRepository) Delete(ctx context.Context, userID, productID string) error {
	query := r.client.Collection("cart_items").
		Where("userId", "==", userID).
		Where("productId", "==", productID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query cart item for delete", err)
	}

	// Absent row is a successful no-op.
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete cart item", err)
		}
	}

	return nil
}

func (r *firestoreCartRepository) DeleteAll(ctx context.Context, userID string) error {
	query := r.client.Collection("cart_items").Where("userId", "==", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query cart items for clear", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to clear cart", err)
		}
	}

	return nil
}
