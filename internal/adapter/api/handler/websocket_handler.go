package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"campustrade/internal/infrastructure/firebase"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
	"campustrade/pkg/response"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub        *ws.Hub
	authClient *firebase.AuthClient
}

func NewWebSocketHandler(hub *ws.Hub, authClient *firebase.AuthClient) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		authClient: authClient,
	}
}

// Connect upgrades to a WebSocket session. Browsers cannot set headers on
// the upgrade request, so the ID token travels as a query parameter instead.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("token query parameter is required", nil))
	}

	uid, err := h.authClient.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := ws.NewClient(uid, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.hub)

	return nil
}
