package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&product.Product{}, &cart.CartItem{}))
	return db
}

func newCartRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/cart", NewCartHandler(db, &config.Config{}).HandleOperation)
	return router
}

func createProduct(t *testing.T, db *gorm.DB, name, price string) *product.Product {
	t.Helper()

	prod := product.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: 10,
	}
	require.NoError(t, db.Create(&prod).Error)
	return &prod
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestCartInvalidAction(t *testing.T) {
	router := newCartRouter(t, newTestDB(t))

	w, resp := postJSON(t, router, "/cart", `{"action": "destroy", "sessionId": "s1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid action", resp["error"])
}

func TestCartMissingSession(t *testing.T) {
	router := newCartRouter(t, newTestDB(t))

	w, resp := postJSON(t, router, "/cart", `{"action": "get"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request data", resp["error"])
}

func TestCartAddReturnsRow(t *testing.T) {
	db := newTestDB(t)
	router := newCartRouter(t, db)
	widget := createProduct(t, db, "Widget", "9.99")

	w, resp := postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d, "quantity": 2}`, widget.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["quantity"])
	assert.Equal(t, "s1", data["session_id"])
	assert.Equal(t, "Widget", data["product"].(map[string]interface{})["name"])
}

func TestCartAddUnknownProduct(t *testing.T) {
	router := newCartRouter(t, newTestDB(t))

	w, resp := postJSON(t, router, "/cart", `{"action": "add", "sessionId": "s1", "productId": 999}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "product not found", resp["error"])
}

func TestCartGetReturnsItemsAndTotal(t *testing.T) {
	db := newTestDB(t)
	router := newCartRouter(t, db)
	widget := createProduct(t, db, "Widget", "9.99")
	gadget := createProduct(t, db, "Gadget", "20.00")

	postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d, "quantity": 2}`, widget.ID))
	postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d}`, gadget.ID))

	w, resp := postJSON(t, router, "/cart", `{"action": "get", "sessionId": "s1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["items"], 2)
	assert.Equal(t, "39.98", data["total"])
}

func TestCartUpdateAndRemove(t *testing.T) {
	db := newTestDB(t)
	router := newCartRouter(t, db)
	widget := createProduct(t, db, "Widget", "9.99")

	_, addResp := postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d}`, widget.ID))
	itemID := int(addResp["data"].(map[string]interface{})["id"].(float64))

	w, resp := postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "update", "sessionId": "s1", "cartItemId": %d, "quantity": 5}`, itemID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), resp["data"].(map[string]interface{})["quantity"])

	w, resp = postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "remove", "sessionId": "s1", "cartItemId": %d}`, itemID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	_, getResp := postJSON(t, router, "/cart", `{"action": "get", "sessionId": "s1"}`)
	assert.Empty(t, getResp["data"].(map[string]interface{})["items"])
}

func TestCartUpdateRejectsZeroQuantity(t *testing.T) {
	db := newTestDB(t)
	router := newCartRouter(t, db)
	widget := createProduct(t, db, "Widget", "9.99")

	_, addResp := postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d}`, widget.ID))
	itemID := int(addResp["data"].(map[string]interface{})["id"].(float64))

	w, resp := postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "update", "sessionId": "s1", "cartItemId": %d, "quantity": 0}`, itemID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "quantity must be at least 1", resp["error"])
}

func TestCartClear(t *testing.T) {
	db := newTestDB(t)
	router := newCartRouter(t, db)
	widget := createProduct(t, db, "Widget", "9.99")

	postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s1", "productId": %d}`, widget.ID))
	postJSON(t, router, "/cart",
		fmt.Sprintf(`{"action": "add", "sessionId": "s2", "productId": %d}`, widget.ID))

	w, resp := postJSON(t, router, "/cart", `{"action": "clear", "sessionId": "s1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	_, s1 := postJSON(t, router, "/cart", `{"action": "get", "sessionId": "s1"}`)
	assert.Empty(t, s1["data"].(map[string]interface{})["items"])

	_, s2 := postJSON(t, router, "/cart", `{"action": "get", "sessionId": "s2"}`)
	assert.Len(t, s2["data"].(map[string]interface{})["items"], 1)
}
