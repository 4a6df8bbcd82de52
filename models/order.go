package models

import (
	"time"
)

// OrderStatus tracks an order through production.
type OrderStatus string

const (
	StatusReceived           OrderStatus = "received"
	StatusInProduction       OrderStatus = "in_production"
	StatusReadyForCollection OrderStatus = "ready_for_collection"
)

// IsValid reports whether s is a recognized status value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusReceived, StatusInProduction, StatusReadyForCollection:
		return true
	}
	return false
}

// Order represents a placed order for a weighed quantity of one product.
// Price and batch index are computed once at placement; only Status and
// UpdatedAt change afterwards.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"` // foreign key to customers table
	Customer      Customer    `gorm:"foreignKey:CustomerID" json:"-"`    // don't include the customer in JSON
	Product       Product     `gorm:"not null;index" json:"product"`
	QuantityKg    int         `gorm:"not null;check:quantity_kg > 0" json:"quantity_kg"`
	TotalPriceNZD float64     `gorm:"not null" json:"total_price_nzd"`
	Status        OrderStatus `gorm:"not null;default:'received'" json:"status"` // received, in_production, ready_for_collection
	Notes         *string     `json:"notes"`
	BatchIndex    *int        `json:"batch_index"` // zero-based production bucket, grouped by batch_threshold_kg of deficit
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
