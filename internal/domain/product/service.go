// internal/domain/product/service.go
package product

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles catalog reads
type Service struct {
	db *gorm.DB
}

// NewService creates a new product service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the product catalog ordered by id
func (s *Service) List() ([]Product, error) {
	var products []Product
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get returns a single product by id
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	if err := s.db.First(&prod, id).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}
