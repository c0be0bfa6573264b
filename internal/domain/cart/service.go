// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors matched by handlers to pick status codes
var (
	ErrSessionRequired = errors.New("session ID is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
)

// Service handles cart business logic. Every operation is scoped to a
// caller-supplied session id; the persisted cart is the sole source of
// truth and nothing is cached between calls.
type Service struct {
	db *gorm.DB
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get retrieves all cart items for a session with joined product data and
// the computed total. An unknown session yields an empty cart, not an error.
func (s *Service) Get(sessionID string) (*CartResponse, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	var items []CartItem
	err := s.db.Preload("Product").
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}

	return &CartResponse{Items: items, Total: total}, nil
}

// Add inserts a cart row for (session, product) or increments the existing
// row's quantity. The insert-or-increment is a single upsert statement, so
// concurrent adds for the same pair converge to the sum of their quantities.
// A zero quantity defaults to 1.
func (s *Service) Add(sessionID string, productID uint, quantity int) (*CartItem, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Validate the product reference before touching the cart
	var prod product.Product
	if err := s.db.First(&prod, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	item := CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
	err := s.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	// Re-read the row: on the conflict path the model holds the attempted
	// insert, not the incremented quantity.
	var result CartItem
	err = s.db.Preload("Product").
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read back cart item: %w", err)
	}

	return &result, nil
}

// Update sets the quantity on the row matching both item id and session.
// The session check prevents cross-session tampering. Non-positive
// quantities are rejected; removal is an explicit Remove, not an update to 0.
func (s *Service) Update(sessionID string, itemID uint, quantity int) (*CartItem, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	result := s.db.Model(&CartItem{}).
		Where("id = ? AND session_id = ?", itemID, sessionID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	var item CartItem
	if err := s.db.Preload("Product").First(&item, itemID).Error; err != nil {
		return nil, fmt.Errorf("failed to read back cart item: %w", err)
	}

	return &item, nil
}

// Remove deletes the row matching both item id and session. Removing an
// already absent row is a no-op, not an error.
func (s *Service) Remove(sessionID string, itemID uint) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	err := s.db.Where("id = ? AND session_id = ?", itemID, sessionID).
		Delete(&CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes all cart rows for the session. Other sessions are untouched.
func (s *Service) Clear(sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	err := s.db.Where("session_id = ?", sessionID).Delete(&CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
