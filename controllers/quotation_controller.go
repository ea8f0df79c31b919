package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/models"
	"github.com/shreeji-machinery/quotation-api/services"
	"github.com/shreeji-machinery/quotation-api/utils"
)

// QuotationItemRequest is one line item in a quotation create/update body
type QuotationItemRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gte=1"`
	Price     decimal.Decimal `json:"price"`
}

// QuotationRequest represents the request body for creating or updating a
// quotation. The subtotal/sgst/cgst/igst fields are accepted for wire
// compatibility with older clients but ignored; the server recomputes the
// breakdown from the items and the customer's region.
type QuotationRequest struct {
	CustomerID    uint                   `json:"customer_id" binding:"required"`
	QuotationDate string                 `json:"quotation_date" binding:"required"`
	Status        string                 `json:"status" binding:"required,oneof=pending approved rejected"`
	Notes         *string                `json:"notes"`
	Currency      string                 `json:"currency" binding:"required,oneof=USD INR EUR"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	SGST          decimal.Decimal        `json:"sgst"`
	CGST          decimal.Decimal        `json:"cgst"`
	IGST          decimal.Decimal        `json:"igst"`
	Items         []QuotationItemRequest `json:"items" binding:"required,min=1,dive"`
}

// validate applies the checks gin's binding tags cannot express
func (r *QuotationRequest) validate() []utils.FieldError {
	var details []utils.FieldError
	for _, item := range r.Items {
		if item.Price.IsNegative() {
			details = append(details, utils.FieldError{Field: "Items.Price", Rule: "gte", Param: "0"})
			break
		}
	}
	return details
}

func (r *QuotationRequest) toInput() services.QuotationInput {
	items := make([]services.QuotationItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, services.QuotationItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return services.QuotationInput{
		CustomerID:    r.CustomerID,
		QuotationDate: r.QuotationDate,
		Status:        r.Status,
		Notes:         r.Notes,
		Currency:      r.Currency,
		Items:         items,
	}
}

// QuotationSummary is a quotation row joined with the customer display
// fields used by the list and calendar views
type QuotationSummary struct {
	models.Quotation
	CustomerName    string  `json:"customer_name"`
	CustomerCompany *string `json:"customer_company"`
	Country         *string `json:"country"`
	State           *string `json:"state"`
}

// QuotationItemDetail is a line item joined with product display fields
type QuotationItemDetail struct {
	models.QuotationItem
	ProductName        string  `json:"product_name"`
	ProductDescription *string `json:"product_description"`
}

// QuotationDetail is the full quotation payload: the row, its customer,
// its items with product names, and the display currency symbol
type QuotationDetail struct {
	models.Quotation
	Customer       models.Customer       `json:"customer"`
	Items          []QuotationItemDetail `json:"items"`
	CurrencySymbol string                `json:"currency_symbol"`
}

// GetQuotations handles GET /api/v1/quotations - lists quotations joined
// with customer display fields, newest first
func GetQuotations(c *gin.Context) {
	db := config.GetDB()

	summaries, err := loadQuotationSummaries(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch quotations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
	})
}

// GetQuotation handles GET /api/v1/quotations/:id - returns the quotation
// with the full customer record and the item list joined with product data
func GetQuotation(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUOTATION_NOT_FOUND",
				"message": "Quotation not found",
			},
		})
		return
	}

	detail, err := loadQuotationDetail(db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QUOTATION_NOT_FOUND",
					"message": "Quotation not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch quotation",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// CreateQuotation handles POST /api/v1/quotations
func CreateQuotation(c *gin.Context) {
	var req QuotationRequest
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

	db := config.GetDB()
	quotation, err := services.CreateQuotation(db, req.toInput())
	if err != nil {
		respondQuotationWriteError(c, err)
		return
	}

	detail, err := loadQuotationDetail(db, quotation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load quotation details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    detail,
	})
}

// UpdateQuotation handles PUT /api/v1/quotations/:id - replaces the item
// set wholesale and recomputes the monetary breakdown
func UpdateQuotation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUOTATION_NOT_FOUND",
				"message": "Quotation not found",
			},
		})
		return
	}

	var req QuotationRequest
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

	db := config.GetDB()
	quotation, err := services.UpdateQuotation(db, uint(id), req.toInput())
	if err != nil {
		respondQuotationWriteError(c, err)
		return
	}

	detail, err := loadQuotationDetail(db, quotation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load quotation details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// DeleteQuotation handles DELETE /api/v1/quotations/:id - removes the line
// items and then the quotation; an absent id still reports success
func DeleteQuotation(c *gin.Context) {
	db := config.GetDB()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
		})
		return
	}

	if err := services.DeleteQuotation(db, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete quotation",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetQuotationCalendar handles GET /api/v1/quotations/calendar - groups the
// (optionally country/state filtered) quotations by day of quotation_date
// within the requested month. Pure display fold, recomputed per request.
func GetQuotationCalendar(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		respondInvalidCalendarParam(c, "year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		respondInvalidCalendarParam(c, "month")
		return
	}

	db := config.GetDB()
	summaries, err := loadQuotationSummaries(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch quotations",
			},
		})
		return
	}

	country := c.Query("country")
	state := c.Query("state")

	days := make(map[int][]QuotationSummary)
	for _, summary := range summaries {
		if !matchesRegion(summary, country, state) {
			continue
		}
		date, parseErr := time.Parse("2006-01-02", summary.QuotationDate)
		if parseErr != nil {
			continue
		}
		if date.Year() != year || int(date.Month()) != month {
			continue
		}
		days[date.Day()] = append(days[date.Day()], summary)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"year":  year,
			"month": month,
			"days":  days,
		},
	})
}

// GetQuotationFilters handles GET /api/v1/quotations/filters - returns the
// distinct countries of quoting customers and, when a country is selected,
// the distinct states within it
func GetQuotationFilters(c *gin.Context) {
	db := config.GetDB()
	summaries, err := loadQuotationSummaries(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch quotations",
			},
		})
		return
	}

	selected := c.Query("country")

	countries := distinctValues(summaries, func(s QuotationSummary) string {
		return derefStr(s.Country)
	})

	states := []string{}
	if selected != "" {
		states = distinctValues(summaries, func(s QuotationSummary) string {
			if !strings.EqualFold(derefStr(s.Country), selected) {
				return ""
			}
			return derefStr(s.State)
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"countries": countries,
			"states":    states,
		},
	})
}

func respondQuotationWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
	case errors.Is(err, services.ErrQuotationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QUOTATION_NOT_FOUND",
				"message": "Quotation not found",
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save quotation",
			},
		})
	}
}

func respondInvalidCalendarParam(c *gin.Context, param string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "INVALID_REQUEST",
			"message": "Invalid " + param + " parameter",
		},
	})
}

func loadQuotationSummaries(db *gorm.DB) ([]QuotationSummary, error) {
	var quotations []models.Quotation
	if err := db.Preload("Customer").Order("created_at DESC").Find(&quotations).Error; err != nil {
		return nil, err
	}

	summaries := make([]QuotationSummary, 0, len(quotations))
	for _, quotation := range quotations {
		summaries = append(summaries, QuotationSummary{
			Quotation:       quotation,
			CustomerName:    quotation.Customer.Name,
			CustomerCompany: quotation.Customer.Company,
			Country:         quotation.Customer.Country,
			State:           quotation.Customer.State,
		})
	}
	return summaries, nil
}

func loadQuotationDetail(db *gorm.DB, id uint) (*QuotationDetail, error) {
	var quotation models.Quotation
	if err := db.First(&quotation, id).Error; err != nil {
		return nil, err
	}

	var customer models.Customer
	if err := db.First(&customer, quotation.CustomerID).Error; err != nil {
		return nil, err
	}

	var items []models.QuotationItem
	if err := db.Preload("Product").
		Where("quotation_id = ?", quotation.ID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	itemDetails := make([]QuotationItemDetail, 0, len(items))
	for _, item := range items {
		itemDetails = append(itemDetails, QuotationItemDetail{
			QuotationItem:      item,
			ProductName:        item.Product.Name,
			ProductDescription: item.Product.Description,
		})
	}

	return &QuotationDetail{
		Quotation:      quotation,
		Customer:       customer,
		Items:          itemDetails,
		CurrencySymbol: utils.CurrencySymbol(quotation.Currency),
	}, nil
}

// matchesRegion applies the cascading country/state filter. An empty
// country matches everything; a state filter only applies together with a
// country, mirroring the filter's reset-on-country-change behavior.
func matchesRegion(summary QuotationSummary, country, state string) bool {
	if country == "" {
		return true
	}
	if !strings.EqualFold(derefStr(summary.Country), country) {
		return false
	}
	if state == "" {
		return true
	}
	return strings.EqualFold(derefStr(summary.State), state)
}

func distinctValues(summaries []QuotationSummary, pick func(QuotationSummary) string) []string {
	seen := make(map[string]string)
	for _, summary := range summaries {
		value := pick(summary)
		if value == "" {
			continue
		}
		lower := strings.ToLower(value)
		if _, ok := seen[lower]; !ok {
			seen[lower] = value
		}
	}

	values := make([]string, 0, len(seen))
	for _, value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
