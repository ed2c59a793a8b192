package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"campustrade/internal/adapter/api"
	"campustrade/internal/adapter/api/handler"
	apimiddleware "campustrade/internal/adapter/api/middleware"
	"campustrade/internal/adapter/api/router"
	"campustrade/internal/adapter/repository"
	"campustrade/internal/infrastructure/firebase"
	"campustrade/internal/infrastructure/ratelimit"
	"campustrade/internal/infrastructure/storage"
	"campustrade/internal/infrastructure/websocket"
	"campustrade/internal/usecase"
	"campustrade/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	universityRepo := repository.NewFirestoreUniversityRepository(firestoreClient)
	campusRepo := repository.NewFirestoreCampusRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	guestCartRepo := repository.NewRedisGuestCartRepository(redisClient, time.Duration(cfg.GuestCartTTLHours)*time.Hour)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	purchaseRequestRepo := repository.NewFirestorePurchaseRequestRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(fbAuth, cfg.FirebaseApiKey)

	hub := websocket.NewHub()
	hub.Start(ctx)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo, campusRepo, cfg.AllowedEmailDomain)
	userUseCase := usecase.NewUserUseCase(userRepo)
	universityUseCase := usecase.NewUniversityUseCase(universityRepo, campusRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, guestCartRepo, productRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(cartRepo, productRepo, orderRepo, purchaseRequestRepo, hub)
	chatUseCase := usecase.NewChatUseCase(chatRepo, productRepo, hub, limiter)
	uploadUseCase := usecase.NewUploadUseCase(storageClient, productRepo)
	purchaseRequestUseCase := usecase.NewPurchaseRequestUseCase(purchaseRequestRepo, productRepo, hub, limiter)

	// Room subscriptions are limited to the conversation's participants.
	hub.SetJoinAuthorizer(func(ctx context.Context, userID, conversationID string) bool {
		return chatUseCase.CanAccessConversation(ctx, userID, conversationID)
	})

	handler.Setup(
		authUseCase,
		userUseCase,
		universityUseCase,
		productUseCase,
		cartUseCase,
		checkoutUseCase,
		chatUseCase,
		uploadUseCase,
		purchaseRequestUseCase,
		hub,
		firebaseAuthClient,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator(cfg.AllowedEmailDomain)

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, authMiddleware, rateLimitMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
