// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// CartItem represents one (session, product) row in the cart. The composite
// unique index backs the atomic insert-or-increment upsert in Add.
type CartItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SessionID string          `gorm:"not null;size:64;uniqueIndex:idx_cart_items_session_product" json:"session_id"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_cart_items_session_product" json:"product_id"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Product   product.Product `gorm:"foreignKey:ProductID" json:"product"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns price × quantity for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartResponse represents a session's cart with items and computed total
type CartResponse struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
