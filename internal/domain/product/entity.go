// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. The catalog is maintained externally
// and is read-only to this service.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	Category    string          `gorm:"size:100;index" json:"category"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// IsInStock reports whether the product has stock remaining
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}
