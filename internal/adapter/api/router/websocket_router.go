package router

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo) {
	wsHandler := handler.GetWebSocketHandler()

	e.GET("/v1/ws", wsHandler.Connect)
}
