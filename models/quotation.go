package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// API clients expect plain JSON numbers for monetary fields, not strings
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Quotation statuses accepted on write. Historical rows may carry other
// values; reads return whatever is stored.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Quotation represents a price offer issued to a customer. The monetary
// breakdown (subtotal, sgst, cgst, igst) is computed server-side from the
// item set and the customer's region; total is always the sum of the four.
type Quotation struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Customer        Customer        `gorm:"foreignKey:CustomerID" json:"-"`
	QuotationNumber string          `gorm:"uniqueIndex;not null" json:"quotation_number"`
	QuotationDate   string          `gorm:"not null" json:"quotation_date"`
	Status          string          `gorm:"not null;default:'pending'" json:"status"`
	Notes           *string         `json:"notes"`
	Currency        string          `gorm:"not null;default:'USD'" json:"currency"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	SGST            decimal.Decimal `gorm:"column:sgst;type:decimal(20,2);not null" json:"sgst"`
	CGST            decimal.Decimal `gorm:"column:cgst;type:decimal(20,2);not null" json:"cgst"`
	IGST            decimal.Decimal `gorm:"column:igst;type:decimal(20,2);not null" json:"igst"`
	Total           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem is a line item of a quotation. Price is a snapshot of the
// product price at creation time and never changes afterwards, even when
// the product price does.
type QuotationItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	QuotationID uint            `gorm:"not null;index" json:"quotation_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"-"`
	Quantity    int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}

// ValidStatus reports whether s is one of the accepted quotation statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidCurrency reports whether c is one of the supported currency codes
func ValidCurrency(c string) bool {
	switch c {
	case "USD", "INR", "EUR":
		return true
	}
	return false
}
