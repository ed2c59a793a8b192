package router

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	cartHandler := handler.GetCartHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate)
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:productId", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/merge", cartHandler.MergeGuestCart)

	guest := e.Group("/v1/guest-cart")
	guest.GET("", cartHandler.GetGuestCart)
	guest.POST("/items", cartHandler.GuestAddItem)
	guest.PATCH("/items/:productId", cartHandler.GuestUpdateQuantity)
	guest.DELETE("/items/:productId", cartHandler.GuestRemoveItem)
	guest.DELETE("", cartHandler.GuestClearCart)
}
