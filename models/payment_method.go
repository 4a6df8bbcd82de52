package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentMethod is a stored payment instrument on a customer profile.
// Details carries opaque gateway metadata and is never interpreted here.
type PaymentMethod struct {
	ID         uint              `gorm:"primaryKey" json:"-"`
	CustomerID uint              `gorm:"not null;index" json:"-"` // foreign key to customers table
	Label      string            `gorm:"not null" json:"label"`   // friendly name, e.g. "Visa ending 1234"
	Brand      *string           `json:"brand"`
	Last4      *string           `json:"last4"`
	Details    datatypes.JSONMap `json:"details"`
	CreatedAt  time.Time         `json:"-"`
	UpdatedAt  time.Time         `json:"-"`
}

// TableName specifies the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
