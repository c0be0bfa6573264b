package cart

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serializes access, which sqlite needs under concurrent writes.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&product.Product{}, &CartItem{}))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *product.Product {
	t.Helper()

	prod := product.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "Test",
		Stock:    stock,
	}
	require.NoError(t, db.Create(&prod).Error)
	return &prod
}

func TestAddAccumulatesQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	_, err := svc.Add("session-a", widget.ID, 1)
	require.NoError(t, err)
	item, err := svc.Add("session-a", widget.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, item.Quantity)

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	require.Len(t, cartResponse.Items, 1)
	assert.Equal(t, 2, cartResponse.Items[0].Quantity)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddRejectsNegativeQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	_, err := svc.Add("session-a", widget.ID, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestAddUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.Add("session-a", 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddRequiresSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	_, err := svc.Add("", widget.ID, 1)
	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestGetEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	cartResponse, err := svc.Get("nobody")
	require.NoError(t, err)
	assert.Empty(t, cartResponse.Items)
	assert.True(t, cartResponse.Total.IsZero(), "empty cart total should be zero, got %s", cartResponse.Total)
}

func TestGetComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)
	gadget := createProduct(t, db, "Gadget", "20.00", 5)

	_, err := svc.Add("session-a", widget.ID, 2)
	require.NoError(t, err)
	_, err = svc.Add("session-a", gadget.ID, 1)
	require.NoError(t, err)

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	require.Len(t, cartResponse.Items, 2)
	assert.Equal(t, "39.98", cartResponse.Total.StringFixed(2))
}

func TestUpdateSetsExactQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 2)
	require.NoError(t, err)

	updated, err := svc.Update("session-a", item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	require.Len(t, cartResponse.Items, 1)
	assert.Equal(t, 7, cartResponse.Items[0].Quantity)
}

func TestUpdateRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 2)
	require.NoError(t, err)

	_, err = svc.Update("session-a", item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Update("session-a", item.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateEnforcesSessionIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 2)
	require.NoError(t, err)

	// Another session must not be able to touch the row
	_, err = svc.Update("session-b", item.ID, 5)
	assert.ErrorIs(t, err, ErrItemNotFound)

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	assert.Equal(t, 2, cartResponse.Items[0].Quantity)
}

func TestRemoveDeletesItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove("session-a", item.ID))

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	assert.Empty(t, cartResponse.Items)
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	assert.NoError(t, svc.Remove("session-a", 12345))
}

func TestRemoveEnforcesSessionIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	item, err := svc.Add("session-a", widget.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove("session-b", item.ID))

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	assert.Len(t, cartResponse.Items, 1)
}

func TestClearOnlyAffectsOwnSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)
	gadget := createProduct(t, db, "Gadget", "20.00", 5)

	_, err := svc.Add("session-a", widget.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add("session-a", gadget.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add("session-b", widget.ID, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Clear("session-a"))

	cleared, err := svc.Get("session-a")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)

	other, err := svc.Get("session-b")
	require.NoError(t, err)
	require.Len(t, other.Items, 1)
	assert.Equal(t, 3, other.Items[0].Quantity)
}

func TestConcurrentAddsConverge(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	widget := createProduct(t, db, "Widget", "9.99", 10)

	const calls = 8
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add("session-a", widget.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	cartResponse, err := svc.Get("session-a")
	require.NoError(t, err)
	require.Len(t, cartResponse.Items, 1)
	assert.Equal(t, calls, cartResponse.Items[0].Quantity)
}
