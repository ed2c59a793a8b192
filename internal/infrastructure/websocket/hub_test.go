package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func testClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, 8),
	}
}

func register(t *testing.T, h *Hub, c *Client) {
	t.Helper()
	select {
	case h.Register <- c:
	case <-time.After(time.Second):
		t.Fatal("register timed out")
	}

	// The hub loop applies registrations asynchronously; wait for it.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mutex.RLock()
		_, ok := h.clients[c.UserID][c]
		h.mutex.RUnlock()
		if ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("registration never applied")
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestBroadcastToRoomReachesAllSubscribersIncludingSender(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	buyer := testClient("buyer-1")
	seller := testClient("seller-1")
	register(t, h, buyer)
	register(t, h, seller)

	h.JoinRoom("conv-1", buyer)
	h.JoinRoom("conv-1", seller)

	h.BroadcastToRoom("conv-1", Event{Type: EventNewMessage, ConversationID: "conv-1"})

	for _, c := range []*Client{buyer, seller} {
		event := receive(t, c)
		if event.Type != EventNewMessage {
			t.Errorf("expected %s, got %s", EventNewMessage, event.Type)
		}
	}
}

func TestTryJoinRoomRejectsNonParticipants(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.SetJoinAuthorizer(func(ctx context.Context, userID, conversationID string) bool {
		return userID == "buyer-1" || userID == "seller-1"
	})
	h.Start(ctx)

	buyer := testClient("buyer-1")
	intruder := testClient("intruder")
	register(t, h, buyer)
	register(t, h, intruder)

	if !h.TryJoinRoom(ctx, "conv-1", buyer) {
		t.Fatal("participant join should be accepted")
	}
	if h.TryJoinRoom(ctx, "conv-1", intruder) {
		t.Fatal("non-participant join should be refused")
	}

	h.BroadcastToRoom("conv-1", Event{Type: EventNewMessage, ConversationID: "conv-1"})

	receive(t, buyer)

	select {
	case <-intruder.Send:
		t.Fatal("non-participant received a conversation event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTryJoinRoomRefusesWithoutAuthorizer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	c := testClient("user-1")
	register(t, h, c)

	if h.TryJoinRoom(ctx, "conv-1", c) {
		t.Fatal("join must be refused when no authorizer is installed")
	}
}

func TestSendToUserReachesEveryConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	tab1 := testClient("user-1")
	tab2 := testClient("user-1")
	register(t, h, tab1)
	register(t, h, tab2)

	h.SendToUser("user-1", Event{Type: EventConversationUpdate})

	receive(t, tab1)
	receive(t, tab2)
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	c := testClient("user-1")
	register(t, h, c)

	h.JoinRoom("conv-1", c)
	h.LeaveRoom("conv-1", c)

	h.BroadcastToRoom("conv-1", Event{Type: EventNewMessage})

	select {
	case <-c.Send:
		t.Fatal("client left the room but still received an event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterClosesSendAndLeavesRooms(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	c := testClient("user-1")
	register(t, h, c)
	h.JoinRoom("conv-1", c)

	select {
	case h.Unregister <- c:
	case <-time.After(time.Second):
		t.Fatal("unregister timed out")
	}

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}

	// Broadcasting to the abandoned room must not panic or block.
	h.BroadcastToRoom("conv-1", Event{Type: EventNewMessage})
}

func TestBroadcastDuringTeardownDoesNotPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	h.Start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			c := testClient("user-1")
			h.Register <- c
			h.JoinRoom("conv-1", c)
			h.Unregister <- c
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			h.BroadcastToRoom("conv-1", Event{Type: EventNewMessage})
			h.SendToUser("user-1", Event{Type: EventConversationUpdate})
		}
	}
}
