package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lampworks/moth-bridge/internal/api/shared/dto"
	"github.com/lampworks/moth-bridge/internal/api/shared/executor"
	"github.com/lampworks/moth-bridge/internal/domain"
	"github.com/lampworks/moth-bridge/internal/logger"
	"github.com/lampworks/moth-bridge/internal/rpcproxy"
)

const serviceName = "moth-bridge-api"

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ScanOwner resolves the Moths an address currently owns
	// GET /api/v1/owners/:address/moths
	ScanOwner(c *gin.Context)

	// AddOwnedMoth verifies and adds a token the scan did not find
	// POST /api/v1/owners/:address/moths
	AddOwnedMoth(c *gin.Context)

	// CheckOwnership reports whether the address owns a token
	// GET /api/v1/owners/:address/moths/:token_id/ownership
	CheckOwnership(c *gin.Context)

	// GetPreview returns name and image of a token
	// GET /api/v1/moths/:token_id/preview
	GetPreview(c *gin.Context)

	// PlanBridge returns the approval state, fee quote and unsigned transactions
	// GET /api/v1/bridge/plan?owner=<address>&token_id=<id>
	PlanBridge(c *gin.Context)

	// ForwardRPC relays a raw JSON-RPC body to the upstream of a chain
	// POST /api/rpc/:chain
	ForwardRPC(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor  executor.Executor
	forwarder rpcproxy.Forwarder
}

// NewHandler creates a new REST API handler
func NewHandler(exec executor.Executor, forwarder rpcproxy.Forwarder) Handler {
	return &handler{
		executor:  exec,
		forwarder: forwarder,
	}
}

// ScanOwner resolves the Moths an address currently owns
func (h *handler) ScanOwner(c *gin.Context) {
	owner, err := parseOwnerParam(c)
	if err != nil {
		respondWithError(c, asAPIError(err))
		return
	}

	resp, err := h.executor.ScanOwner(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, zap.String("owner", owner.Hex()))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddOwnedMoth verifies and adds a token the scan did not find
func (h *handler) AddOwnedMoth(c *gin.Context) {
	owner, err := parseOwnerParam(c)
	if err != nil {
		respondWithError(c, asAPIError(err))
		return
	}

	var req dto.AddMothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondWithError(c, asAPIError(err))
		return
	}

	resp, err := h.executor.AddOwnedMoth(c.Request.Context(), owner, req.TokenID)
	if err != nil {
		respondError(c, err, zap.String("owner", owner.Hex()), zap.String("token_id", req.TokenID))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckOwnership reports whether the address owns a token
func (h *handler) CheckOwnership(c *gin.Context) {
	owner, err := parseOwnerParam(c)
	if err != nil {
		respondWithError(c, asAPIError(err))
		return
	}

	resp, err := h.executor.CheckOwnership(c.Request.Context(), owner, c.Param("token_id"))
	if err != nil {
		respondError(c, err, zap.String("owner", owner.Hex()))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPreview returns name and image of a token
func (h *handler) GetPreview(c *gin.Context) {
	item, err := h.executor.GetPreview(c.Request.Context(), c.Param("token_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// PlanBridge returns the approval state, fee quote and unsigned transactions
func (h *handler) PlanBridge(c *gin.Context) {
	var query dto.BridgePlanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query: %v", err))
		return
	}

	owner, _, err := query.Validate()
	if err != nil {
		respondWithError(c, asAPIError(err))
		return
	}

	plan, err := h.executor.PlanBridge(c.Request.Context(), owner, query.TokenID)
	if err != nil {
		respondError(c, err, zap.String("owner", owner.Hex()), zap.String("token_id", query.TokenID))
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ForwardRPC relays a raw JSON-RPC body to the upstream of a chain.
// Errors use a flat {"error": "..."} body, which is what JSON-RPC clients of the relay expect.
func (h *handler) ForwardRPC(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	chain := c.Param("chain")

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	resp, err := h.forwarder.Forward(c.Request.Context(), chain, body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownChain):
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown chain '%s'", chain)})
		case errors.Is(err, rpcproxy.ErrUpstreamUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream request failed"})
		default:
			logger.ErrorCtx(c.Request.Context(), err, zap.String("chain", chain))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request could not be forwarded"})
		}
		return
	}

	c.Data(resp.StatusCode, resp.ContentType, resp.Body)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}
