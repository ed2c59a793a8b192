package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustrade/internal/domain/entity"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
)

func newChatFixture(products ...*entity.Product) (*ChatUseCase, *fakeChatRepo, *fakeNotifier, *fakeLimiter) {
	chatRepo := newFakeChatRepo()
	notifier := &fakeNotifier{}
	limiter := newFakeLimiter()
	uc := NewChatUseCase(chatRepo, newFakeProductRepo(products...), notifier, limiter)
	return uc, chatRepo, notifier, limiter
}

func TestStartConversationIsIdempotentPerTriple(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	first, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	second, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationRejectsSelf(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))

	_, err := uc.StartConversation(context.Background(), "seller-1", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageAssignsMonotonicSequence(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		sender := "buyer-1"
		if i%2 == 0 {
			sender = "seller-1"
		}
		msg, err := uc.SendMessage(ctx, sender, conv.ID, SendMessageInput{Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, int64(i), msg.Seq)
	}

	messages, total, err := uc.ListMessages(ctx, "buyer-1", conv.ID, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	for i := 1; i < len(messages); i++ {
		assert.Greater(t, messages[i].Seq, messages[i-1].Seq)
	}
}

func TestSendMessagePushesToRoomAndRecipientInbox(t *testing.T) {
	uc, _, notifier, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "buyer-1", conv.ID, SendMessageInput{Content: "still available?"})
	require.NoError(t, err)

	roomEvents := notifier.byTarget("room:" + conv.ID)
	require.Len(t, roomEvents, 1)
	assert.Equal(t, ws.EventNewMessage, roomEvents[0].Type)

	inboxEvents := notifier.byTarget("user:seller-1")
	// One for the new conversation, one for the message.
	require.Len(t, inboxEvents, 2)
	assert.Equal(t, ws.EventConversationUpdate, inboxEvents[1].Type)
}

func TestSendMessageRejectsOutsiders(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "stranger", conv.ID, SendMessageInput{Content: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, _, err = uc.ListMessages(ctx, "stranger", conv.ID, 1, 12)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "buyer-1", conv.ID, SendMessageInput{Content: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestSendMessageHonorsRateLimit(t *testing.T) {
	uc, _, _, limiter := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	limiter.denied["send_message"] = true

	_, err = uc.SendMessage(ctx, "buyer-1", conv.ID, SendMessageInput{Content: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestMarkConversationReadClearsUnread(t *testing.T) {
	uc, chatRepo, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "buyer-1", conv.ID, SendMessageInput{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, chatRepo.conversations[conv.ID].UnreadCount["seller-1"])

	require.NoError(t, uc.MarkConversationRead(ctx, "seller-1", conv.ID))
	assert.Zero(t, chatRepo.conversations[conv.ID].UnreadCount["seller-1"])
}

func TestCanAccessConversationLimitedToParticipants(t *testing.T) {
	uc, _, _, _ := newChatFixture(activeProduct("p1", "seller-1", 5000))
	ctx := context.Background()

	conv, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)

	assert.True(t, uc.CanAccessConversation(ctx, "buyer-1", conv.ID))
	assert.True(t, uc.CanAccessConversation(ctx, "seller-1", conv.ID))
	assert.False(t, uc.CanAccessConversation(ctx, "intruder", conv.ID))
	assert.False(t, uc.CanAccessConversation(ctx, "buyer-1", "no-such-conversation"))
}

func TestListConversationsFiltersByParticipant(t *testing.T) {
	uc, _, _, _ := newChatFixture(
		activeProduct("p1", "seller-1", 5000),
		activeProduct("p2", "seller-2", 3000),
	)
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, "buyer-1", "p1")
	require.NoError(t, err)
	_, err = uc.StartConversation(ctx, "buyer-2", "p2")
	require.NoError(t, err)

	mine, err := uc.ListConversations(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "buyer-1", mine[0].BuyerID)
}
