package lists

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mossrow/tokenguard/internal/validation"
)

// Handler exposes the security lists over HTTP.
type Handler struct {
	registry *Registry
}

// NewHandler creates a new lists handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes sets up the list routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/lists", h.Chains)
	r.GET("/lists/:chainId", validation.ChainParamMiddleware(), h.GetChain)
}

// Chains handles GET /v1/lists
func (h *Handler) Chains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chains": h.registry.Chains()})
}

// GetChain handles GET /v1/lists/:chainId
func (h *Handler) GetChain(c *gin.Context) {
	chainID := c.GetInt64("chainId")

	if !h.registry.HasChain(chainID) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "unknown_chain",
			"message": "No security lists for this chain",
		})
		return
	}

	set, _ := h.registry.Snapshot(chainID)
	c.JSON(http.StatusOK, gin.H{
		"chainId": chainID,
		"lists":   set,
	})
}
