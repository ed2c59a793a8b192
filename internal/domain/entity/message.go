package entity

import "time"

// Message is immutable once created. Seq is a per-conversation monotonic
// sequence number assigned at write time; readers order by it instead of
// relying on notification arrival order.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Content        string    `json:"content" firestore:"content"`
	Seq            int64     `json:"seq" firestore:"seq"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
