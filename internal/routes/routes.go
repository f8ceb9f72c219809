package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rubenhtun/luxora-store/internal/auth"
	"github.com/rubenhtun/luxora-store/internal/config"
	"github.com/rubenhtun/luxora-store/internal/handlers"
	"github.com/rubenhtun/luxora-store/internal/logger"
	"github.com/rubenhtun/luxora-store/internal/middleware"
	"github.com/rubenhtun/luxora-store/internal/product"
	"github.com/rubenhtun/luxora-store/internal/user"
)

func RegisterRoutes(
	router *gin.Engine,
	products product.Service,
	users user.Service,
	sessions auth.SessionRepository,
	cfg *config.Config,
) {
	router.Use(logger.RequestID(), logger.Access(), middleware.RateLimit())

	productHandler := handlers.NewProductHandler(products)
	authHandler := handlers.NewAuthHandler(users, sessions, cfg)
	userHandler := handlers.NewUserHandler(users)

	api := router.Group("/api")
	{
		api.GET("/products", productHandler.List)
		api.GET("/products/categories", productHandler.Categories)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", middleware.RequireAuth(), productHandler.Create)
		api.PATCH("/products/:id", middleware.RequireAuth(), productHandler.Update)
		api.DELETE("/products/:id", middleware.RequireAuth(), productHandler.Delete)

		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/users/me", middleware.RequireAuth(), userHandler.Me)
		api.PATCH("/users/update-phone", middleware.RequireAuth(), userHandler.UpdatePhone)
	}
}
