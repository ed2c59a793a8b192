package handler

import (
	"campustrade/internal/infrastructure/firebase"
	"campustrade/internal/infrastructure/websocket"
	"campustrade/internal/usecase"
)

var (
	authHandler            *AuthHandler
	userHandler            *UserHandler
	universityHandler      *UniversityHandler
	productHandler         *ProductHandler
	cartHandler            *CartHandler
	checkoutHandler        *CheckoutHandler
	chatHandler            *ChatHandler
	uploadHandler          *UploadHandler
	purchaseRequestHandler *PurchaseRequestHandler
	wsHandler              *WebSocketHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	universityUseCase *usecase.UniversityUseCase,
	productUseCase *usecase.ProductUseCase,
	cartUseCase *usecase.CartUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	chatUseCase *usecase.ChatUseCase,
	uploadUseCase *usecase.UploadUseCase,
	purchaseRequestUseCase *usecase.PurchaseRequestUseCase,
	hub *websocket.Hub,
	authClient *firebase.AuthClient,
) {
	authHandler = NewAuthHandler(authUseCase, cartUseCase)
	userHandler = NewUserHandler(userUseCase)
	universityHandler = NewUniversityHandler(universityUseCase)
	productHandler = NewProductHandler(productUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	uploadHandler = NewUploadHandler(uploadUseCase)
	purchaseRequestHandler = NewPurchaseRequestHandler(purchaseRequestUseCase)
	wsHandler = NewWebSocketHandler(hub, authClient)
}

func GetAuthHandler() *AuthHandler { return authHandler }

func GetUserHandler() *UserHandler { return userHandler }

func GetUniversityHandler() *UniversityHandler { return universityHandler }

func GetProductHandler() *ProductHandler { return productHandler }

func GetCartHandler() *CartHandler { return cartHandler }

func GetCheckoutHandler() *CheckoutHandler { return checkoutHandler }

func GetChatHandler() *ChatHandler { return chatHandler }

func GetUploadHandler() *UploadHandler { return uploadHandler }

func GetPurchaseRequestHandler() *PurchaseRequestHandler { return purchaseRequestHandler }

func GetWebSocketHandler() *WebSocketHandler { return wsHandler }
