// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		&product.Product{},
		&cart.CartItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_session ON cart_items(session_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Additional indexes created successfully")
	return nil
}

// SeedInitialData seeds the catalog with demo products in development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	log.Println("🔄 Seeding catalog with demo products...")

	products := []product.Product{
		{
			Name:        "Wireless Headphones",
			Description: "Over-ear noise cancelling headphones with 30-hour battery life",
			Price:       decimal.RequireFromString("129.99"),
			ImageURL:    "https://images.example.com/products/wireless-headphones.jpg",
			Category:    "Audio",
			Stock:       42,
		},
		{
			Name:        "Smart Watch",
			Description: "Fitness tracking smart watch with heart rate monitor and GPS",
			Price:       decimal.RequireFromString("199.99"),
			ImageURL:    "https://images.example.com/products/smart-watch.jpg",
			Category:    "Wearables",
			Stock:       27,
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Compact mechanical keyboard with hot-swappable switches",
			Price:       decimal.RequireFromString("89.99"),
			ImageURL:    "https://images.example.com/products/mechanical-keyboard.jpg",
			Category:    "Accessories",
			Stock:       63,
		},
		{
			Name:        "Portable Speaker",
			Description: "Waterproof Bluetooth speaker with 12-hour playtime",
			Price:       decimal.RequireFromString("59.99"),
			ImageURL:    "https://images.example.com/products/portable-speaker.jpg",
			Category:    "Audio",
			Stock:       88,
		},
		{
			Name:        "USB-C Hub",
			Description: "7-in-1 USB-C hub with HDMI, card reader and pass-through charging",
			Price:       decimal.RequireFromString("39.99"),
			ImageURL:    "https://images.example.com/products/usb-c-hub.jpg",
			Category:    "Accessories",
			Stock:       120,
		},
		{
			Name:        "HD Webcam",
			Description: "1080p webcam with autofocus and built-in dual microphones",
			Price:       decimal.RequireFromString("69.99"),
			ImageURL:    "https://images.example.com/products/hd-webcam.jpg",
			Category:    "Accessories",
			Stock:       54,
		},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d products", len(products))
	return nil
}
