package usecase

import (
	"context"
	"time"

	ws "campustrade/internal/infrastructure/websocket"
)

// FirebaseAuthClient is the identity provider surface the usecases depend on.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(email, password string) (string, string, error)
}

// ChatNotifier pushes realtime events to connected clients. Delivery is best
// effort; persistence never waits on it.
type ChatNotifier interface {
	BroadcastToRoom(conversationID string, event ws.Event)
	SendToUser(userID string, event ws.Event)
}

// RateLimiter guards write-heavy user actions.
type RateLimiter interface {
	Allow(userID, action string) (allowed bool, retryAfter time.Duration)
}
