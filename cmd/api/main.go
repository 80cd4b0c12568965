package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delizza/mailing-backend/api/routes"
	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/handlers"
	"github.com/delizza/mailing-backend/internal/logger"
	mongorepo "github.com/delizza/mailing-backend/internal/repositories/mongodb"
	"github.com/delizza/mailing-backend/internal/services"
	"github.com/delizza/mailing-backend/pkg/emailgateway"
	"github.com/delizza/mailing-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			zlog.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	campaignRepo := mongorepo.NewCampaignRepository(db)
	templateRepo := mongorepo.NewTemplateRepository(db)
	subscriberRepo := mongorepo.NewSubscriberRepository(db)
	messageRepo := mongorepo.NewMessageRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)

	// The delivery gateway is selected once here; everything downstream
	// only sees the interface.
	gateway := emailgateway.New(cfg)

	// Services
	authService := services.NewAuthService(adminUserRepo, cfg)
	campaignService := services.NewCampaignService(campaignRepo)
	templateService := services.NewTemplateService(templateRepo)
	subscriberService := services.NewSubscriberService(subscriberRepo, zlog)
	dispatchService := services.NewDispatchService(campaignRepo, templateRepo, subscriberRepo, messageRepo, gateway, cfg.Dispatch, zlog)

	// Scheduler for due campaigns
	scheduler := services.NewScheduler(campaignRepo, dispatchService, zlog)
	if err := scheduler.Start(cfg.Dispatch.SchedulerSpec); err != nil {
		zlog.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		CampaignHandler:    handlers.NewCampaignHandler(campaignService, dispatchService),
		TemplateHandler:    handlers.NewTemplateHandler(templateService),
		SubscriberHandler:  handlers.NewSubscriberHandler(subscriberService),
		UnsubscribeHandler: handlers.NewUnsubscribeHandler(subscriberService, zlog),
	}

	router := routes.SetupRouter(cfg, zlog, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	zlog.Info("Server starting", zap.String("port", cfg.Server.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting")
}
