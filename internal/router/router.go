package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fisionote/internal/handler"
	"fisionote/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
// Handler swag annotations are documentation only; no docs route is mounted.
func Setup(
	log zerolog.Logger,
	allowedOrigins []string,
	noteH *handler.NoteHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	notes := v1.Group("/notes")
	notes.POST("/normalize", noteH.Normalize)
	notes.POST("/generate", noteH.Generate)

	return r
}
