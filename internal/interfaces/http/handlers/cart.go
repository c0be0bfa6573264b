// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// CartHandler handles the cart endpoint
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db),
		config:      cfg,
	}
}

// CartOperationRequest is the action-dispatch body for POST /cart. The
// session id is a client-generated opaque token; it scopes cart ownership
// but is not an authenticated identity.
type CartOperationRequest struct {
	Action     string `json:"action" binding:"required"`
	SessionID  string `json:"sessionId" binding:"required"`
	ProductID  uint   `json:"productId"`
	Quantity   int    `json:"quantity"`
	CartItemID uint   `json:"cartItemId"`
}

// HandleOperation handles POST /cart, dispatching on the action field
func (h *CartHandler) HandleOperation(c *gin.Context) {
	var req CartOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	switch req.Action {
	case "add":
		item, err := h.cartService.Add(req.SessionID, req.ProductID, req.Quantity)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})

	case "update":
		item, err := h.cartService.Update(req.SessionID, req.CartItemID, req.Quantity)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})

	case "remove":
		if err := h.cartService.Remove(req.SessionID, req.CartItemID); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case "get":
		cartResponse, err := h.cartService.Get(req.SessionID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": cartResponse})

	case "clear":
		if err := h.cartService.Clear(req.SessionID); err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

// respondError maps service errors to status codes: validation failures are
// the caller's fault, anything else is a persistence failure.
func (h *CartHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cart.ErrSessionRequired),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
