package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/clearlane/ownership-oracle/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Asset endpoints (public read access)
		v1.GET("/assets/:id/owner", handler.GetOwner)
		v1.GET("/assets/:id/history", handler.GetHistory)
		v1.GET("/assets/:id/encumbrance", handler.GetEncumbrance)
		v1.GET("/assets/:id/availability", handler.GetAvailability)
		v1.POST("/assets/:id/verify", handler.VerifyClaim)
		v1.GET("/assets/:id/evidence", handler.GetEvidence)

		// Owner endpoints (public read access)
		v1.GET("/owners/:id/portfolio", handler.GetPortfolio)
		v1.GET("/owners/:id/available", handler.GetAvailableAssets)
		v1.GET("/owners/:id/maturity-schedule", handler.GetMaturitySchedule)

		// Encumbrance endpoints (requires authentication)
		v1.POST("/encumbrances", middleware.Auth(authCfg), handler.CreateEncumbrance)
		v1.DELETE("/encumbrances/:id", middleware.Auth(authCfg), handler.ReleaseEncumbrance)

		// Dispute endpoints (requires authentication)
		v1.POST("/disputes/resolve", middleware.Auth(authCfg), handler.ResolveDispute)
		v1.POST("/disputes/flag", middleware.Auth(authCfg), handler.FlagDispute)
	}
}
