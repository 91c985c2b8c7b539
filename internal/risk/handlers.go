package risk

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mossrow/tokenguard/internal/validation"
)

// Handler provides HTTP handlers for the token risk API.
type Handler struct {
	engine     *Engine
	store      Store
	defaultCfg Config
}

// NewHandler creates a new risk handler. store may be nil when history
// is not persisted.
func NewHandler(engine *Engine, store Store, defaultCfg Config) *Handler {
	return &Handler{engine: engine, store: store, defaultCfg: defaultCfg}
}

// RegisterRoutes sets up the token risk routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/tokens/:chainId/:address/quick", validation.ChainParamMiddleware(), h.Quick)
	r.GET("/tokens/:chainId/:address/history", validation.ChainParamMiddleware(), h.History)
	r.POST("/tokens/validate", h.Validate)
	r.POST("/tokens/validate/batch", h.ValidateBatch)
	r.GET("/risk/levels", h.Levels)
}

// ValidateRequest is the body for POST /v1/tokens/validate.
type ValidateRequest struct {
	Address  string         `json:"address"`
	ChainID  ChainID        `json:"chainId"`
	Metadata *TokenMetadata `json:"metadata,omitempty"`
	Config   *Config        `json:"config,omitempty"`
}

// BatchRequest is the body for POST /v1/tokens/validate/batch.
type BatchRequest struct {
	Tokens []BatchItem `json:"tokens"`
	Config *Config     `json:"config,omitempty"`
}

// Quick handles GET /v1/tokens/:chainId/:address/quick
func (h *Handler) Quick(c *gin.Context) {
	chainID := c.GetInt64("chainId")
	address := validation.SanitizeAddress(c.Param("address"))

	var meta *TokenMetadata
	if name := c.Query("name"); name != "" || c.Query("symbol") != "" {
		meta = &TokenMetadata{
			Name:   validation.SanitizeString(name, 256),
			Symbol: validation.SanitizeString(c.Query("symbol"), 64),
		}
	}

	result := h.engine.QuickCheck(address, ChainID(chainID), meta)
	c.JSON(http.StatusOK, gin.H{
		"address":        address,
		"chainId":        chainID,
		"riskLevel":      result.Level,
		"trusted":        result.Trusted,
		"reason":         result.Reason,
		"recommendation": Recommendation(result.Level),
	})
}

// Validate handles POST /v1/tokens/validate
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	if errs := validation.Validate(
		validation.ValidAddress("address", req.Address),
		validation.ValidChainID("chainId", strconv.FormatInt(int64(req.ChainID), 10)),
	); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
		})
		return
	}

	cfg := h.defaultCfg
	if req.Config != nil {
		cfg = *req.Config
	}

	v, err := h.engine.Validate(c.Request.Context(), req.Address, req.ChainID, req.Metadata, cfg)
	if err != nil {
		if errors.Is(err, ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_address",
				"message": "Token address is not a valid contract address",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to validate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"validation":     v,
		"description":    Description(v.Level),
		"recommendation": Recommendation(v.Level),
	})
}

// ValidateBatch handles POST /v1/tokens/validate/batch
func (h *Handler) ValidateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	if len(req.Tokens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": "tokens must not be empty",
		})
		return
	}
	if len(req.Tokens) > validation.MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "batch_too_large",
			"message": "Batch exceeds maximum of " + strconv.Itoa(validation.MaxBatchSize) + " tokens",
		})
		return
	}

	cfg := h.defaultCfg
	if req.Config != nil {
		cfg = *req.Config
	}

	results := h.engine.ValidateBatch(c.Request.Context(), req.Tokens, cfg)

	out := make([]gin.H, len(results))
	failed := 0
	for i, r := range results {
		item := gin.H{
			"address": r.Address,
			"chainId": r.ChainID,
		}
		if r.Err != nil {
			failed++
			item["error"] = r.Err.Error()
		} else {
			item["validation"] = r.Validation
		}
		out[i] = item
	}

	c.JSON(http.StatusOK, gin.H{
		"results": out,
		"total":   len(results),
		"failed":  failed,
	})
}

// History handles GET /v1/tokens/:chainId/:address/history
func (h *Handler) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error":   "no_history",
			"message": "Validation history is not persisted on this deployment",
		})
		return
	}

	chainID := c.GetInt64("chainId")
	address := validation.SanitizeAddress(c.Param("address"))

	if !validation.IsValidEthAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_address",
			"message": "Token address is not a valid contract address",
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	history, err := h.store.ListByToken(c.Request.Context(), address, ChainID(chainID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to load validation history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":     address,
		"chainId":     chainID,
		"validations": history,
		"count":       len(history),
	})
}

// Levels handles GET /v1/risk/levels
func (h *Handler) Levels(c *gin.Context) {
	levels := []Level{LevelVerified, LevelLow, LevelMedium, LevelHigh, LevelCritical, LevelUnknown}

	out := make([]gin.H, 0, len(levels))
	for _, l := range levels {
		out = append(out, gin.H{
			"level":          l,
			"description":    Description(l),
			"recommendation": Recommendation(l),
		})
	}

	c.JSON(http.StatusOK, gin.H{"levels": out})
}
