package router

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/adapter/api/handler"
	"campustrade/internal/adapter/api/middleware"
)

func SetupPurchaseRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	purchaseRequestHandler := handler.GetPurchaseRequestHandler()

	requests := e.Group("/v1/purchase-requests")
	requests.Use(authMiddleware.Authenticate)
	requests.POST("", purchaseRequestHandler.Create, rateLimitMiddleware.Limit("purchase_request"))
	requests.GET("/received", purchaseRequestHandler.ListReceived)
}
