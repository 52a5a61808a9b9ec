package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Owned set of an address
		v1.GET("/owners/:address/moths", handler.ScanOwner)
		v1.POST("/owners/:address/moths", handler.AddOwnedMoth)

		// Single ownership check
		v1.GET("/owners/:address/moths/:token_id/ownership", handler.CheckOwnership)

		// Display metadata
		v1.GET("/moths/:token_id/preview", handler.GetPreview)

		// Unsigned bridge transactions
		v1.GET("/bridge/plan", handler.PlanBridge)
	}

	// Same-origin JSON-RPC relay
	router.POST("/api/rpc/:chain", handler.ForwardRPC)
}
