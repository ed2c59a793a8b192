package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"campustrade/pkg/logger"
)

const (
	EventNewMessage         = "new_message"
	EventConversationUpdate = "conversation_update"
)

// Event is the envelope pushed to subscribed clients.
type Event struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Payload        interface{} `json:"payload"`
}

// JoinAuthorizer reports whether a user may subscribe to a conversation's
// message stream. The hub itself knows nothing about conversations, so the
// participant rule is injected from the chat layer.
type JoinAuthorizer func(ctx context.Context, userID, conversationID string) bool

// Hub tracks live connections two ways: by user (for inbox-level updates) and
// by conversation room (for message streams). A user may hold several
// connections at once, e.g. two browser tabs.
type Hub struct {
	clients map[string]map[*Client]bool // userID -> connections
	rooms   map[string]map[*Client]bool // conversationID -> subscribers

	Register   chan *Client
	Unregister chan *Client

	authorize JoinAuthorizer

	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the hub's main loop until ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				if h.clients[client.UserID] == nil {
					h.clients[client.UserID] = make(map[*Client]bool)
				}
				h.clients[client.UserID][client] = true
				h.mutex.Unlock()
				logger.Debug("Client registered: %s", client.UserID)

			case client := <-h.Unregister:
				h.removeClient(client)
				logger.Debug("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeClient drops the connection from its user set and from every room it
// joined, then closes its send channel. Teardown is unconditional: a closed
// connection never lingers as a subscriber.
func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, ok := h.clients[client.UserID]; ok {
		if conns[client] {
			delete(conns, client)
			close(client.Send)
		}
		if len(conns) == 0 {
			delete(h.clients, client.UserID)
		}
	}

	for roomID, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// SetJoinAuthorizer installs the participant check applied to client join
// frames. Call it during wiring, before connections are accepted.
func (h *Hub) SetJoinAuthorizer(fn JoinAuthorizer) {
	h.mutex.Lock()
	h.authorize = fn
	h.mutex.Unlock()
}

// TryJoinRoom subscribes the client only when the authorizer approves it.
// Conversations are private to their two participants, so join frames from
// anyone else are dropped. With no authorizer installed every join is refused.
func (h *Hub) TryJoinRoom(ctx context.Context, conversationID string, client *Client) bool {
	h.mutex.RLock()
	authorize := h.authorize
	h.mutex.RUnlock()

	if authorize == nil || !authorize(ctx, client.UserID, conversationID) {
		logger.Debug("Refused join to %s for %s", conversationID, client.UserID)
		return false
	}

	h.JoinRoom(conversationID, client)
	return true
}

// JoinRoom subscribes the client to a conversation's message stream. Callers
// outside the hub's own plumbing should go through TryJoinRoom.
func (h *Hub) JoinRoom(conversationID string, client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.rooms[conversationID] == nil {
		h.rooms[conversationID] = make(map[*Client]bool)
	}
	h.rooms[conversationID][client] = true
}

func (h *Hub) LeaveRoom(conversationID string, client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if members, ok := h.rooms[conversationID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, conversationID)
		}
	}
}

// BroadcastToRoom pushes an event to every subscriber of a conversation,
// including the sender's own connections. Slow consumers are dropped rather
// than allowed to stall the hub.
func (h *Hub) BroadcastToRoom(conversationID string, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event: %v", err)
		return
	}

	// Sends stay under the read lock: removeClient closes Send while holding
	// the write lock, so a send can never race the close.
	h.mutex.RLock()
	var dropped []*Client
	for client := range h.rooms[conversationID] {
		select {
		case client.Send <- raw:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range dropped {
		go func(c *Client) { h.Unregister <- c }(client)
	}
}

// SendToUser pushes an event to every connection a user holds. Used for
// inbox-level updates that must arrive even when the recipient has not opened
// the conversation.
func (h *Hub) SendToUser(userID string, event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event: %v", err)
		return
	}

	h.mutex.RLock()
	var dropped []*Client
	for client := range h.clients[userID] {
		select {
		case client.Send <- raw:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mutex.RUnlock()

	for _, client := range dropped {
		go func(c *Client) { h.Unregister <- c }(client)
	}
}
