package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/neha222222/property-listing-system/cache"
	"github.com/neha222222/property-listing-system/config"
	"github.com/neha222222/property-listing-system/handlers"
	"github.com/neha222222/property-listing-system/middleware"
)

func Register(e *echo.Echo, db *mongo.Database, c *cache.Cache, cfg *config.Config) {
	auth := handlers.NewAuthHandler(db, c, cfg)
	properties := handlers.NewPropertyHandler(db, c, cfg)
	favorites := handlers.NewFavoriteHandler(db, c, cfg)
	recommendations := handlers.NewRecommendationHandler(db, c, cfg)

	requireAuth := middleware.JWT(cfg.JWTSecret)

	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.GET("/me", auth.Me, requireAuth)

	propertyGroup := api.Group("/properties")
	propertyGroup.GET("", properties.List)
	propertyGroup.GET("/:id", properties.Get)
	propertyGroup.POST("", properties.Create, requireAuth)
	propertyGroup.PUT("/:id", properties.Update, requireAuth)
	propertyGroup.DELETE("/:id", properties.Delete, requireAuth)

	favoriteGroup := api.Group("/favorites", requireAuth)
	favoriteGroup.GET("", favorites.List)
	favoriteGroup.POST("/:propertyId", favorites.Add)
	favoriteGroup.DELETE("/:propertyId", favorites.Remove)

	recommendationGroup := api.Group("/recommendations", requireAuth)
	recommendationGroup.POST("", recommendations.Create)
	recommendationGroup.GET("/received", recommendations.ListReceived)
	recommendationGroup.GET("/sent", recommendations.ListSent)
	recommendationGroup.PATCH("/:id/status", recommendations.UpdateStatus)
}
