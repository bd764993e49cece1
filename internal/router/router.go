package router

import (
	"github.com/gin-gonic/gin"

	"medclaim/internal/handler"
	"medclaim/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(claimH *handler.ClaimHandler, healthH *handler.HealthHandler, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	claims := v1.Group("/claims")
	claims.POST("/process", claimH.Process)
	claims.GET("/document-types", claimH.DocumentTypes)

	return r
}
