package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a buyer in the system. Identity is the system-assigned
// id; email is a unique lookup key used by the storefront's upsert flow.
type Customer struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Email          string          `gorm:"uniqueIndex;not null" json:"email"`
	Phone          *string         `json:"phone"`
	Address        *string         `json:"address"`
	PaymentMethods []PaymentMethod `gorm:"foreignKey:CustomerID" json:"payment_methods"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// AfterFind normalizes loaded customers so payment_methods serializes as an
// empty list rather than null when none are stored
func (c *Customer) AfterFind(tx *gorm.DB) error {
	if c.PaymentMethods == nil {
		c.PaymentMethods = []PaymentMethod{}
	}
	return nil
}
