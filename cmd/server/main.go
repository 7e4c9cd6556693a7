package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsaprep/internal/config"
	"dsaprep/internal/events"
	"dsaprep/internal/handlers"
	"dsaprep/internal/jobs"
	"dsaprep/internal/metrics"
	"dsaprep/internal/models"
	"dsaprep/internal/repositories"
	mongorepo "dsaprep/internal/repositories/mongo"
	"dsaprep/internal/routers"
	"dsaprep/internal/tracker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if cfg.PostgresDSN == "" {
		logger.Fatal("POSTGRES_DSN is empty")
	}

	// relational side: principals and tokens
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Token{}); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	// document side: profiles, topics, questions, progress
	ctx := context.Background()
	mongoClient, err := mongorepo.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())

	mongoDB, err := mongoClient.DB(cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to open mongo database", zap.Error(err))
	}
	store := mongorepo.NewStore(mongoDB)

	bus := events.NewBus(cfg.RedisAddr, logger)
	defer bus.Close()

	userRepo := &repositories.UserRepository{DB: db}
	tokenRepo := &repositories.TokenRepository{DB: db}

	sessions := tracker.NewManager(store, store, logger, bus.Publish)

	authHandler := &handlers.AuthHandler{
		Repo:      userRepo,
		Tokens:    tokenRepo,
		Profiles:  store.Profiles,
		Publish:   bus.Publish,
		JWTSecret: cfg.JWTSecret,
	}
	userHandler := &handlers.UserHandler{Repo: userRepo, Sessions: sessions, JWTSecret: cfg.JWTSecret}
	topicHandler := handlers.NewTopicHandler(store.Topics)
	questionHandler := handlers.NewQuestionHandler(store.Questions)
	trackerHandler := handlers.NewTrackerHandler(sessions)
	wsHandler := handlers.NewWSHandler(bus, logger, cfg.JWTSecret)
	healthHandler := handlers.NewHealthHandler()

	cleanup := jobs.NewTokenCleanupJob(tokenRepo, cfg.CleanupSchedule, logger)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("failed to start token cleanup", zap.Error(err))
	}
	defer cleanup.Stop()

	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(metrics.Middleware)

	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler)
	routers.UserRoutes(router, userHandler)
	routers.TrackerRoutes(router, trackerHandler, cfg.JWTSecret)
	routers.AdminRoutes(router, topicHandler, questionHandler, cfg.JWTSecret)
	routers.WSRoutes(router, wsHandler)

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("dsaprep service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("dsaprep service shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("dsaprep service exited")
}
