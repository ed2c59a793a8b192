package entity

import (
	"time"
)

const (
	ProductStatusActive  = "active"
	ProductStatusSold    = "sold"
	ProductStatusRemoved = "removed"
)

type Product struct {
	ID          string   `json:"id" firestore:"id"`
	SellerID    string   `json:"seller_id" firestore:"sellerId"`
	CampusID    string   `json:"campus_id" firestore:"campusId"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Price       float64  `json:"price" firestore:"price"`
	Category    string   `json:"category" firestore:"category"`
	Images      []string `json:"images" firestore:"images"`
	Status      string   `json:"status" firestore:"status"` // "active", "sold", "removed"
	Featured    bool     `json:"featured" firestore:"featured"`
	Views       int      `json:"views" firestore:"views"`

	// Lowercased title tokens, maintained on every write so the store can
	// match search queries without an external index.
	SearchTerms []string `json:"-" firestore:"searchTerms"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (p *Product) Purchasable() bool {
	return p.Status == ProductStatusActive
}
