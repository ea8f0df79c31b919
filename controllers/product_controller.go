package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/models"
	"github.com/shreeji-machinery/quotation-api/utils"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	HSNCode     *string         `json:"hsn_code"`
	Currency    string          `json:"currency"`
	ImageURL    *string         `json:"image_url"`
}

// validate applies the checks gin's binding tags cannot express for this type
func (r *ProductRequest) validate() []utils.FieldError {
	var details []utils.FieldError
	if r.Price.IsNegative() {
		details = append(details, utils.FieldError{Field: "Price", Rule: "gte", Param: "0"})
	}
	if r.Currency != "" && !models.ValidCurrency(r.Currency) {
		details = append(details, utils.FieldError{Field: "Currency", Rule: "oneof", Param: "USD INR EUR"})
	}
	return details
}

// GetProducts handles GET /api/v1/products - lists all products by name
func GetProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct handles POST /api/v1/products
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": utils.ValidationDetails(err),
			},
		})
		return
	}
	if details := req.validate(); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": details,
			},
		})
		return
	}

	product := productFromRequest(req)

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id
func UpdateProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product",
			},
		})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": utils.ValidationDetails(err),
			},
		})
		return
	}
	if details := req.validate(); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": details,
			},
		})
		return
	}

	updated := productFromRequest(req)
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt

	if err := db.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id - always reports success,
// even when no row matched
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	if err := db.Delete(&models.Product{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func productFromRequest(req ProductRequest) models.Product {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	return models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		HSNCode:     req.HSNCode,
		Currency:    currency,
		ImageURL:    req.ImageURL,
	}
}
