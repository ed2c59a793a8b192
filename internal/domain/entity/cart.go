package entity

import (
	"time"
)

// CartItem is a persisted cart row. It stores only the (owner, product)
// reference and a quantity; product title, price and images are joined at
// read time so listing changes are reflected immediately in the cart view.
type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ProductID string    `json:"product_id" firestore:"productId"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// GuestCartItem is the pre-authentication cart entry, kept as a JSON blob in
// Redis under the guest's cart token.
type GuestCartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
