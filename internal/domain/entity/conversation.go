package entity

import "time"

// Conversation is a two-party, one-product messaging thread. At most one
// conversation exists per (buyer, seller, product) triple.
type Conversation struct {
	ID        string `json:"id" firestore:"id"`
	BuyerID   string `json:"buyer_id" firestore:"buyerId"`
	SellerID  string `json:"seller_id" firestore:"sellerId"`
	ProductID string `json:"product_id" firestore:"productId"`

	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	MessageCount  int64          `json:"message_count" firestore:"messageCount"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.BuyerID == userID {
		return c.SellerID
	}
	return c.BuyerID
}
