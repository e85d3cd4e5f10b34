package main

import (
	"context"
	"fmt"
	"log"

	"habitcircle_backend/internal/api"
	"habitcircle_backend/internal/repository"
	"habitcircle_backend/internal/service"
	"habitcircle_backend/internal/storage"
	"habitcircle_backend/pkg/auth"
	"habitcircle_backend/pkg/logger"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.Firebase.ProjectID,
		StorageBucket: cfg.Firebase.StorageBucket,
	}, opts...)
	if err != nil {
		zapLogger.Fatal("Failed to initialize firebase app", zap.Error(err))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, opts...)
	if err != nil {
		zapLogger.Fatal("Failed to initialize firestore client", zap.Error(err))
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to initialize messaging client", zap.Error(err))
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to initialize auth client", zap.Error(err))
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to initialize storage client", zap.Error(err))
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		zapLogger.Fatal("Failed to open default bucket", zap.Error(err))
	}

	repo := repository.New(firestoreClient)
	defer repo.Close()

	notifier := service.NewNotificationService(messagingClient, zapLogger)
	reminder := service.NewReminderService(repo, repo, repo, notifier, nil, zapLogger)
	profileSync := service.NewProfileSyncService(repo, zapLogger)
	deletion := service.NewDeletionService(
		authClient,
		storage.NewBucket(bucket),
		repo,
		cfg.Firebase.StorageHost,
		zapLogger,
	)
	commentNotify := service.NewCommentNotifyService(repo, repo, notifier, zapLogger)
	fanout := service.NewPostFanoutService(repo, notifier, zapLogger)

	triggerAuth := auth.NewTriggerAuth(cfg.Trigger.Secret)

	router := gin.New()
	router.Use(gin.Recovery())

	a := router.Group("/api/v1")
	api.NewReminderRoutes(a, reminder, triggerAuth)
	api.NewUserTriggerRoutes(a, profileSync, deletion, triggerAuth)
	api.NewTimelineTriggerRoutes(a, fanout, triggerAuth)
	api.NewCommentTriggerRoutes(a, commentNotify, triggerAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
