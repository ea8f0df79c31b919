package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/models"
	"github.com/shreeji-machinery/quotation-api/utils"
)

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	Name               string  `json:"name" binding:"required"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone"`
	Company            *string `json:"company"`
	Address            *string `json:"address"`
	Country            *string `json:"country"`
	State              *string `json:"state"`
	ContactPersonName  *string `json:"contact_person_name"`
	ContactPersonEmail *string `json:"contact_person_email" binding:"omitempty,email"`
	ContactPersonPhone *string `json:"contact_person_phone"`
}

// GetCustomers handles GET /api/v1/customers - lists all customers, newest first
func GetCustomers(c *gin.Context) {
	db := config.GetDB()

	var customers []models.Customer
	if err := db.Order("created_at DESC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetCustomer handles GET /api/v1/customers/:id
func GetCustomer(c *gin.Context) {
	db := config.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
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

	customer := customerFromRequest(req)

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create customer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customer,
	})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	db := config.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer",
			},
		})
		return
	}

	var req CustomerRequest
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

	updated := customerFromRequest(req)
	updated.ID = customer.ID
	updated.CreatedAt = customer.CreatedAt

	if err := db.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update customer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// DeleteCustomer handles DELETE /api/v1/customers/:id - refuses to delete a
// customer that still has quotations; deleting an absent id reports success
func DeleteCustomer(c *gin.Context) {
	db := config.GetDB()
	id := c.Param("id")

	var quotationCount int64
	if err := db.Model(&models.Quotation{}).Where("customer_id = ?", id).Count(&quotationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check customer quotations",
			},
		})
		return
	}
	if quotationCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Customer has quotations and cannot be deleted",
			},
		})
		return
	}

	if err := db.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete customer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func customerFromRequest(req CustomerRequest) models.Customer {
	return models.Customer{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Company:            req.Company,
		Address:            req.Address,
		Country:            req.Country,
		State:              req.State,
		ContactPersonName:  req.ContactPersonName,
		ContactPersonEmail: req.ContactPersonEmail,
		ContactPersonPhone: req.ContactPersonPhone,
	}
}
