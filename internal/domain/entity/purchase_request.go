package entity

import "time"

// PurchaseRequest is a notification record, not a transaction. Creating one
// has no inventory side effect; the exchange itself happens in person.
type PurchaseRequest struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"product_id" firestore:"productId"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
