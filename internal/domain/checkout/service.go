// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/recommend"
	"gorm.io/gorm"
)

// ErrEmptyCart is returned when checkout is attempted on a cart with no items
var ErrEmptyCart = errors.New("cart is empty")

// fallbackRecommendations is used when the recommendation gateway yields
// nothing; the receipt always carries at least one suggestion.
var fallbackRecommendations = []string{
	"Check out our bestsellers!",
	"Subscribe for exclusive deals",
	"Follow us on social media",
}

// Service orchestrates the checkout flow
type Service struct {
	cartService *cart.Service
	recommender recommend.Recommender
}

// NewService creates a new checkout service. The recommender is injected so
// callers (and tests) control the external dependency.
func NewService(db *gorm.DB, recommender recommend.Recommender) *Service {
	return &Service{
		cartService: cart.NewService(db),
		recommender: recommender,
	}
}

// CustomerInfo is the customer detail echoed onto the receipt
type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// LineItem is one itemized line on a receipt
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// Receipt is the ephemeral post-checkout summary. It is returned to the
// caller and never persisted.
type Receipt struct {
	OrderID         string       `json:"orderId"`
	Timestamp       time.Time    `json:"timestamp"`
	Customer        CustomerInfo `json:"customer"`
	Items           []LineItem   `json:"items"`
	Total           string       `json:"total"`
	Recommendations []string     `json:"recommendations"`
}

// Checkout reads the session's cart, computes the total, enriches the
// receipt with best-effort recommendations and returns it. Clearing the
// cart is the caller's responsibility; a client that never issues the clear
// action leaves a stale cart behind.
func (s *Service) Checkout(ctx context.Context, sessionID string, customer CustomerInfo) (*Receipt, error) {
	cartResponse, err := s.cartService.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for checkout: %w", err)
	}

	if len(cartResponse.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]LineItem, len(cartResponse.Items))
	productNames := make([]string, len(cartResponse.Items))
	total := decimal.Zero
	for i, item := range cartResponse.Items {
		subtotal := item.Subtotal()
		items[i] = LineItem{
			Name:     item.Product.Name,
			Quantity: item.Quantity,
			Price:    item.Product.Price.StringFixed(2),
			Subtotal: subtotal.StringFixed(2),
		}
		productNames[i] = item.Product.Name
		total = total.Add(subtotal)
	}

	// Best-effort: a failed or empty recommendation call never blocks checkout
	recommendations := s.recommender.Recommend(ctx, productNames)
	if len(recommendations) == 0 {
		recommendations = fallbackRecommendations
	}

	return &Receipt{
		OrderID:         uuid.New().String(),
		Timestamp:       time.Now().UTC(),
		Customer:        customer,
		Items:           items,
		Total:           total.StringFixed(2),
		Recommendations: recommendations,
	}, nil
}
