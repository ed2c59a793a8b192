package repository

import (
	"context"

	"campustrade/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// GetByTriple returns the conversation for (buyer, seller, product), or a
	// NOT_FOUND error. Conversation creation is idempotent on this triple.
	GetByTriple(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Update(ctx context.Context, conv *entity.Conversation) error

	// AppendMessage persists the message and bumps the conversation's
	// last-activity fields and message counter in one atomic write, assigning
	// the message its per-conversation sequence number.
	AppendMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
}
