package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"bias_notifier/internal/api"
	"bias_notifier/internal/repository"
	"bias_notifier/internal/service"
	"bias_notifier/pkg/auth"
	"bias_notifier/pkg/gemini"
	"bias_notifier/pkg/logger"
	"bias_notifier/pkg/proton"
	"bias_notifier/pkg/push"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
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

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	pushClient, err := push.NewClient(context.Background(), cfg.Firebase.ServiceAccountBase64)
	if err != nil {
		zapLogger.Fatal("Failed to initialize push client", zap.Error(err))
	}
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
	protonClient := proton.NewClient(cfg.Proton.RPCEndpoint)

	subscriptionService := service.NewSubscriptionService(repo, repo)
	reminderService := service.NewReminderService(repo, geminiClient, pushClient, cfg.Links.AppURL)
	rewardService := service.NewRewardService(repo, protonClient, pushClient, cfg.Links.ClaimURL)

	cronAuth := auth.NewCronAuth(cfg.Cron.Secret)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewSubscriptionRoutes(a, subscriptionService)
	api.NewRewardRoutes(a, subscriptionService)
	api.NewCronRoutes(a, reminderService, rewardService, cronAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
