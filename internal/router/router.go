package router

import (
	"github.com/gin-gonic/gin"

	"vixip/internal/config"
	"vixip/internal/handler"
	"vixip/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	deckH *handler.DeckHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	decks := v1.Group("/decks")
	decks.POST("", deckH.Upload)
	decks.GET("", deckH.List)
	decks.GET("/:id", deckH.GetByID)
	decks.DELETE("/:id", deckH.Delete)
	decks.GET("/:id/text", deckH.Text)
	decks.POST("/:id/chat", deckH.Chat)
	decks.POST("/:id/transform", deckH.Transform)
	decks.GET("/:id/download", deckH.Download)
	decks.GET("/:id/export", deckH.Export)

	return r
}
