package models

import (
	"time"
)

// Customer represents a buyer the business issues quotations to.
// Only the name is required; region fields drive the GST calculation.
type Customer struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	Email              *string   `json:"email"`
	Phone              *string   `json:"phone"`
	Company            *string   `json:"company"`
	Address            *string   `json:"address"`
	Country            *string   `json:"country"`
	State              *string   `json:"state"`
	ContactPersonName  *string   `json:"contact_person_name"`
	ContactPersonEmail *string   `json:"contact_person_email"`
	ContactPersonPhone *string   `json:"contact_person_phone"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
