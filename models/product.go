package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry that quotation line items reference
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	HSNCode     *string         `gorm:"column:hsn_code" json:"hsn_code"`
	Currency    string          `gorm:"not null;default:'USD'" json:"currency"`
	ImageURL    *string         `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
