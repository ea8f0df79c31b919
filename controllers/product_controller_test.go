package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shreeji-machinery/quotation-api/models"
)

func productRoutes() *gin.Engine {
	router := setupTestRouter()
	router.GET("/products", GetProducts)
	router.POST("/products", CreateProduct)
	router.GET("/products/:id", GetProduct)
	router.PUT("/products/:id", UpdateProduct)
	router.DELETE("/products/:id", DeleteProduct)
	return router
}

func TestCreateProduct(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create product",
			requestBody: map[string]interface{}{
				"name":        "Hydraulic Press 50T",
				"description": "50 tonne H-frame press",
				"price":       185000.50,
				"hsn_code":    "84622900",
				"currency":    "INR",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.True(t, response["success"].(bool))
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Hydraulic Press 50T", data["name"])
				assert.Equal(t, "INR", data["currency"])
				assert.Equal(t, "84622900", data["hsn_code"])
				assert.InDelta(t, 185000.50, data["price"].(float64), 0.001)
			},
		},
		{
			name: "Currency defaults to USD",
			requestBody: map[string]interface{}{
				"name":  "Bench Vice",
				"price": 45,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "USD", data["currency"])
			},
		},
		{
			name:           "Fail with missing name",
			requestBody:    map[string]interface{}{"price": 10},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with negative price",
			requestBody: map[string]interface{}{
				"name":  "Broken Pricing",
				"price": -1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Fail with unsupported currency",
			requestBody: map[string]interface{}{
				"name":     "Imported Drill",
				"price":    10,
				"currency": "GBP",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := productRoutes()
			w := performJSON(t, router, http.MethodPost, "/products", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := parseResponse(t, w)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				assert.Equal(t, tt.expectedError, errorCode(t, response))
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestGetProducts_OrderedByName(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "Welding Torch", "300.00")
	seedProduct(t, db, "Angle Grinder", "120.00")

	router := productRoutes()
	w := performJSON(t, router, http.MethodGet, "/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "Angle Grinder", first["name"])
}

func TestGetProduct(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db, "Angle Grinder", "120.00")

	router := productRoutes()

	t.Run("found", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/products/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, product.Name, data["name"])
	})

	t.Run("not found", func(t *testing.T) {
		w := performJSON(t, router, http.MethodGet, "/products/999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, parseResponse(t, w)))
	})
}

func TestUpdateProduct(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "Angle Grinder", "120.00")

	router := productRoutes()

	t.Run("successfully update", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPut, "/products/1", map[string]interface{}{
			"name":     "Angle Grinder 900W",
			"price":    135.00,
			"currency": "EUR",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "Angle Grinder 900W", data["name"])
		assert.Equal(t, "EUR", data["currency"])

		var stored models.Product
		assert.NoError(t, db.First(&stored, 1).Error)
		assert.Equal(t, "Angle Grinder 900W", stored.Name)
	})

	t.Run("not found", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPut, "/products/999", map[string]interface{}{
			"name":  "Ghost",
			"price": 1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, "Angle Grinder", "120.00")

	router := productRoutes()

	t.Run("successfully delete", func(t *testing.T) {
		w := performJSON(t, router, http.MethodDelete, "/products/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&models.Product{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("absent id still reports success", func(t *testing.T) {
		w := performJSON(t, router, http.MethodDelete, "/products/999", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, parseResponse(t, w)["success"].(bool))
	})
}
