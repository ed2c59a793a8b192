package entity

import "time"

const OrderStatusPlaced = "placed"

// OrderItem snapshots a cart line at placement time. Unlike cart rows, order
// items keep a copy of title and price so the record survives listing edits.
type OrderItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	Title     string  `json:"title" firestore:"title"`
	Price     float64 `json:"price" firestore:"price"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	SellerID  string  `json:"seller_id" firestore:"sellerId"`
}

// Order is the terminal record of the checkout flow. There is no payment
// step; the order carries the in-person meetup details instead.
type Order struct {
	ID             string      `json:"id" firestore:"id"`
	BuyerID        string      `json:"buyer_id" firestore:"buyerId"`
	Items          []OrderItem `json:"items" firestore:"items"`
	TotalPrice     float64     `json:"total_price" firestore:"totalPrice"`
	MeetupLocation string      `json:"meetup_location" firestore:"meetupLocation"`
	MeetupDate     time.Time   `json:"meetup_date" firestore:"meetupDate"`
	Notes          string      `json:"notes,omitempty" firestore:"notes,omitempty"`
	Status         string      `json:"status" firestore:"status"`
	CreatedAt      time.Time   `json:"created_at" firestore:"createdAt"`
}
