package router

import (
	"github.com/labstack/echo/v4"

	"campustrade/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware)
	SetupUniversityRouter(e)
	SetupProductRouter(e, authMiddleware)
	SetupCartRouter(e, authMiddleware)
	SetupCheckoutRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupUploadRouter(e, authMiddleware)
	SetupPurchaseRequestRouter(e, authMiddleware, rateLimitMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
