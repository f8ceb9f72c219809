package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/auth"
	"github.com/rubenhtun/luxora-store/internal/config"
	"github.com/rubenhtun/luxora-store/internal/db"
	"github.com/rubenhtun/luxora-store/internal/logger"
	"github.com/rubenhtun/luxora-store/internal/product"
	"github.com/rubenhtun/luxora-store/internal/routes"
	"github.com/rubenhtun/luxora-store/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	client := db.Connect(cfg)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.L().Warn("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		logger.L().Fatal("failed to ensure indexes", zap.Error(err))
	}

	productRepo := product.NewRepository(database.Collection("products"))
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database.Collection("users"))
	userSvc := user.NewService(userRepo)

	sessionRepo := auth.NewSessionRepository(database.Collection("sessions"))

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, productSvc, userSvc, sessionRepo, cfg)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
