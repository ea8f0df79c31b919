package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/models"
)

// setupTestDB opens an in-memory database, migrates all models and installs
// it as the global DB instance
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Quotation{},
		&models.QuotationItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// performJSON marshals body and runs the request through the router
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	t.Helper()

	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no error object: %v", response)
	}
	return errData["code"].(string)
}

func seedCustomer(t *testing.T, db *gorm.DB, name, country, state string) models.Customer {
	t.Helper()

	customer := models.Customer{Name: name}
	if country != "" {
		customer.Country = &country
	}
	if state != "" {
		customer.State = &state
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	product := models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Currency: "USD",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}
