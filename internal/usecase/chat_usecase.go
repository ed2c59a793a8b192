package usecase

import (
	"context"
	"strings"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	productRepo repository.ProductRepository
	notifier    ChatNotifier
	limiter     RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	productRepo repository.ProductRepository,
	notifier ChatNotifier,
	limiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		productRepo: productRepo,
		notifier:    notifier,
		limiter:     limiter,
	}
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// StartConversation opens (or returns) the thread between the caller and a
// listing's seller. At most one conversation exists per (buyer, seller,
// product); calling this twice hands back the same thread.
func (u *ChatUseCase) StartConversation(ctx context.Context, buyerID, productID string) (*entity.Conversation, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot message yourself about your own listing", nil)
	}

	existing, err := u.chatRepo.GetByTriple(ctx, buyerID, product.SellerID, productID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if allowed, _ := u.limiter.Allow(buyerID, "start_conversation"); !allowed {
		return nil, errors.TooManyRequests("You are starting conversations too quickly")
	}

	conv := &entity.Conversation{
		BuyerID:   buyerID,
		SellerID:  product.SellerID,
		ProductID: productID,
	}

	if err := u.chatRepo.Create(ctx, conv); err != nil {
		return nil, err
	}

	u.notifier.SendToUser(product.SellerID, ws.Event{
		Type:           ws.EventConversationUpdate,
		ConversationID: conv.ID,
		Payload:        conv,
	})

	return conv, nil
}

// SendMessage persists the message, then pushes it to the conversation room.
// The sender's own connections get the push too; clients render from the
// stream instead of echoing optimistically, so every reader sees the same
// sequence.
func (u *ChatUseCase) SendMessage(ctx context.Context, senderID, conversationID string, input SendMessageInput) (*entity.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Validation("content", "message cannot be empty")
	}

	conv, err := u.chatRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conv.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	if allowed, _ := u.limiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly")
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	if err := u.chatRepo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	u.notifier.BroadcastToRoom(conversationID, ws.Event{
		Type:           ws.EventNewMessage,
		ConversationID: conversationID,
		Payload:        message,
	})

	// Inbox-level update for the recipient, who may not have the room open.
	u.notifier.SendToUser(conv.OtherParticipant(senderID), ws.Event{
		Type:           ws.EventConversationUpdate,
		ConversationID: conversationID,
		Payload: map[string]interface{}{
			"last_message": message.Content,
			"sender_id":    senderID,
			"seq":          message.Seq,
		},
	})

	return message, nil
}

// CanAccessConversation reports whether the user participates in the
// conversation. It backs the realtime join check, so room subscriptions carry
// the same participant rule as the REST reads.
func (u *ChatUseCase) CanAccessConversation(ctx context.Context, userID, conversationID string) bool {
	conv, err := u.chatRepo.GetByID(ctx, conversationID)
	if err != nil {
		return false
	}
	return conv.HasParticipant(userID)
}

func (u *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return u.chatRepo.ListByParticipant(ctx, userID)
}

func (u *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]*entity.Message, int64, error) {
	conv, err := u.chatRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	if !conv.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not part of this conversation", nil)
	}

	offset := (page - 1) * pageSize
	return u.chatRepo.ListMessages(ctx, conversationID, pageSize, offset)
}

func (u *ChatUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	conv, err := u.chatRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conv.HasParticipant(userID) {
		return errors.Forbidden("You are not part of this conversation", nil)
	}

	return u.chatRepo.MarkRead(ctx, conversationID, userID)
}
