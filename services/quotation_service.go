package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shreeji-machinery/quotation-api/models"
)

// Sentinel errors the controllers map to API responses
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrQuotationNotFound = errors.New("quotation not found")
)

// maxNumberAttempts bounds the retry loop when two requests race for the
// same quotation number and the unique index rejects the second insert
const maxNumberAttempts = 3

// QuotationItemInput is one line item of a create/update request. Price is
// the snapshot taken by the caller from the product at selection time.
type QuotationItemInput struct {
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

// QuotationInput carries the validated fields of a create/update request.
// The monetary breakdown is always recomputed from Items and the customer's
// region; callers cannot supply it.
type QuotationInput struct {
	CustomerID    uint
	QuotationDate string
	Status        string
	Notes         *string
	Currency      string
	Items         []QuotationItemInput
}

// FormatQuotationNumber renders a year-scoped sequential quotation number,
// e.g. FormatQuotationNumber(2025, 7) == "QT-2025-0007"
func FormatQuotationNumber(year int, seq int64) string {
	return fmt.Sprintf("QT-%d-%04d", year, seq)
}

// nextQuotationNumber reads the highest existing number for the year inside
// the current transaction and proposes the one after it. Deriving from the
// max rather than the row count keeps the sequence gap-free when rows for
// the year have been deleted or a concurrent insert forces a retry.
func nextQuotationNumber(tx *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("QT-%d-", year)
	var numbers []string
	if err := tx.Model(&models.Quotation{}).
		Where("quotation_number LIKE ?", prefix+"%").
		Order("quotation_number DESC").
		Limit(1).
		Pluck("quotation_number", &numbers).Error; err != nil {
		return "", fmt.Errorf("failed to look up latest quotation number: %w", err)
	}

	seq := int64(1)
	if len(numbers) > 0 {
		last, err := strconv.ParseInt(strings.TrimPrefix(numbers[0], prefix), 10, 64)
		if err != nil {
			return "", fmt.Errorf("malformed quotation number %q: %w", numbers[0], err)
		}
		seq = last + 1
	}
	return FormatQuotationNumber(year, seq), nil
}

// CreateQuotation persists a quotation and its items in one transaction.
// It generates the quotation number, recomputes subtotal and taxes from the
// items and the customer's region, and retries on quotation-number
// collisions.
func CreateQuotation(db *gorm.DB, in QuotationInput) (*models.Quotation, error) {
	var customer models.Customer
	if err := db.First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	year := time.Now().Year()
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		var quotation models.Quotation
		err := db.Transaction(func(tx *gorm.DB) error {
			number, err := nextQuotationNumber(tx, year)
			if err != nil {
				return err
			}

			quotation = buildQuotation(in, customer)
			quotation.QuotationNumber = number
			if err := tx.Create(&quotation).Error; err != nil {
				return err
			}

			return insertItems(tx, quotation.ID, in.Items)
		})
		if err == nil {
			return &quotation, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to allocate quotation number after %d attempts: %w", maxNumberAttempts, lastErr)
}

// UpdateQuotation rewrites a quotation in one transaction. The item set is
// replaced wholesale; the quotation number never changes.
func UpdateQuotation(db *gorm.DB, id uint, in QuotationInput) (*models.Quotation, error) {
	var existing models.Quotation
	if err := db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuotationNotFound
		}
		return nil, err
	}

	var customer models.Customer
	if err := db.First(&customer, in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	quotation := buildQuotation(in, customer)
	quotation.ID = existing.ID
	quotation.QuotationNumber = existing.QuotationNumber
	quotation.CreatedAt = existing.CreatedAt

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&quotation).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", quotation.ID).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, quotation.ID, in.Items)
	})
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// DeleteQuotation removes the items and then the quotation row in one
// transaction. Deleting an absent id is not an error.
func DeleteQuotation(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).
			Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quotation{}, id).Error
	})
}

// buildQuotation assembles the quotation row with the server-computed
// monetary breakdown
func buildQuotation(in QuotationInput, customer models.Customer) models.Quotation {
	subtotal := itemsSubtotal(in.Items)
	taxes := CalculateTaxes(strVal(customer.Country), strVal(customer.State), subtotal)

	return models.Quotation{
		CustomerID:    in.CustomerID,
		QuotationDate: in.QuotationDate,
		Status:        in.Status,
		Notes:         in.Notes,
		Currency:      in.Currency,
		Subtotal:      subtotal,
		SGST:          taxes.SGST,
		CGST:          taxes.CGST,
		IGST:          taxes.IGST,
		Total:         taxes.Total(subtotal),
	}
}

// itemsSubtotal sums price × quantity over the line items
func itemsSubtotal(items []QuotationItemInput) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal.Round(2)
}

func insertItems(tx *gorm.DB, quotationID uint, items []QuotationItemInput) error {
	rows := make([]models.QuotationItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.QuotationItem{
			QuotationID: quotationID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return tx.Create(&rows).Error
}

// isDuplicateKey detects unique-constraint violations across drivers.
// GORM only translates them when TranslateError is enabled, so fall back
// to message sniffing for the postgres and sqlite texts.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique")
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
