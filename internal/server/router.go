package server

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/justsurfingit/career-copilot/internal/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Advisory *handlers.AdvisoryHandler
	Jobs     *handlers.JobHandler
}

// New builds the engine with CORS restricted to origins.
func New(h Handlers, origins []string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(logger), recovery(logger))

	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(config))

	r.GET("/health", handlers.HealthCheck)

	// Auth
	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.GET("/profile", h.Auth.Profile)
	r.POST("/logout", h.Auth.Logout)

	// Advisory
	r.POST("/chat", h.Advisory.Chat)
	r.POST("/extract_pdf_text", h.Advisory.ExtractPDFText)
	r.POST("/analyze-pdf", h.Advisory.AnalyzePDF)

	// Jobs
	api := r.Group("/api")
	{
		api.GET("/search", h.Jobs.SearchJobs)
		api.GET("/jobs", h.Jobs.ListJobs)
	}

	return r
}
