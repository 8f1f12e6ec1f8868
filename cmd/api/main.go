package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"kangenshare/internal/adapter/api"
	"kangenshare/internal/adapter/api/handler"
	apimiddleware "kangenshare/internal/adapter/api/middleware"
	"kangenshare/internal/adapter/api/router"
	"kangenshare/internal/adapter/repository"
	"kangenshare/internal/infrastructure/firebase"
	"kangenshare/internal/infrastructure/qr"
	"kangenshare/internal/infrastructure/ratelimit"
	"kangenshare/internal/infrastructure/storage"
	"kangenshare/internal/infrastructure/websocket"
	"kangenshare/internal/usecase"
	"kangenshare/pkg/config"
)

func firebaseCredentials() option.ClientOption {
	// Service account JSON in the environment wins; a file path is the
	// local-development fallback.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		return option.WithCredentialsJSON([]byte(serviceAccountJSON))
	}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		serviceAccountPath = "./service-account.json"
	}
	return option.WithCredentialsFile(serviceAccountPath)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	creds := firebaseCredentials()

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, creds)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, creds)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, creds)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}

	// Repositories
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	requestRepo := repository.NewFirestoreRequestRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	// Use cases
	firebaseAuth := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuth)
	userUseCase := usecase.NewUserUseCase(userRepo, storageClient, notificationUseCase)
	requestUseCase := usecase.NewRequestUseCase(requestRepo, userRepo, notificationUseCase)
	chatUseCase := usecase.NewChatUseCase(messageRepo, requestRepo, notificationUseCase)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, userRepo, notificationUseCase)
	adminUseCase := usecase.NewAdminUseCase(userRepo, notificationUseCase)

	// Realtime
	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	// Rate limiting
	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	qrGenerator := qr.NewGenerator(cfg.QREndpoint)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		User:         handler.NewUserHandler(userUseCase),
		Request:      handler.NewRequestHandler(requestUseCase, qrGenerator),
		Chat:         handler.NewChatHandler(chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		Review:       handler.NewReviewHandler(reviewUseCase),
		Admin:        handler.NewAdminHandler(adminUseCase),
		File:         handler.NewFileHandler(userUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, notificationUseCase, requestUseCase, userUseCase),
		Health:       handler.NewHealthHandler(cfg.Environment),
	}

	middlewares := router.Middlewares{
		Auth:      apimiddleware.NewAuthMiddleware(authClient),
		Admin:     apimiddleware.NewAdminMiddleware(userRepo),
		RateLimit: apimiddleware.NewRateLimitMiddleware(limiter),
	}

	router.Setup(e, handlers, middlewares)

	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server stopped: %v", err)
	}
}
