package router

import (
	"github.com/gin-gonic/gin"

	"invoicepad/internal/handler"
	"invoicepad/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	sessionH *handler.SessionHandler,
	exportH *handler.ExportHandler,
	logoH *handler.LogoHandler,
	countryH *handler.CountryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.GET("/countries", countryH.List)

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.DELETE("/:id", sessionH.Delete)
	sessions.PUT("/:id/fields", sessionH.EditField)
	sessions.POST("/:id/lines", sessionH.AddLine)
	sessions.PUT("/:id/lines/:index", sessionH.EditLineField)
	sessions.DELETE("/:id/lines/:index", sessionH.RemoveLine)
	sessions.POST("/:id/logo", logoH.Upload)
	sessions.GET("/:id/export/:format", exportH.Export)
	sessions.POST("/:id/email", exportH.Email)

	return r
}
