// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/pkg/recommend"
	"gorm.io/gorm"
)

// CheckoutHandler handles the checkout endpoint
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, cfg *config.Config, recommender recommend.Recommender) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, recommender),
		config:          cfg,
	}
}

// CheckoutRequest is the body for POST /checkout
type CheckoutRequest struct {
	SessionID    string                `json:"sessionId" binding:"required"`
	CustomerInfo checkout.CustomerInfo `json:"customerInfo" binding:"required"`
}

// Checkout handles POST /checkout. The cart is not cleared here; the client
// issues the cart clear action after receiving the receipt.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	receipt, err := h.checkoutService.Checkout(c.Request.Context(), req.SessionID, req.CustomerInfo)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "receipt": receipt})
}
