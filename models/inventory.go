package models

import (
	"time"
)

// Product identifies one of the products sold by weight. The catalog is a
// closed set; unknown values are rejected at the API boundary and never
// reach the inventory ledger.
type Product string

const (
	ProductSuxhuk      Product = "suxhuk"
	ProductMishTeTeren Product = "mish_te_teren"
)

// AllProducts returns the fixed catalog in a stable order.
func AllProducts() []Product {
	return []Product{ProductSuxhuk, ProductMishTeTeren}
}

// IsValid reports whether p is one of the catalog products.
func (p Product) IsValid() bool {
	switch p {
	case ProductSuxhuk, ProductMishTeTeren:
		return true
	}
	return false
}

// InventoryItem holds the ordering rules and the running stock balance for
// one product. AvailableKg is signed: a negative balance is a production
// backlog (preorders), not an error.
type InventoryItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Product          Product   `gorm:"uniqueIndex;not null" json:"product"`
	PricePerKg       float64   `gorm:"not null" json:"price_per_kg"`
	MinKg            int       `gorm:"not null;default:1" json:"min_kg"`                 // minimum kg per order
	StepKg           int       `gorm:"not null;default:1" json:"step_kg"`                // order increment in kg
	AvailableKg      float64   `gorm:"not null;default:0" json:"available_kg"`           // can go negative for preorder
	BatchThresholdKg int       `gorm:"not null;default:15" json:"batch_threshold_kg"`    // size of one production batch
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory"
}

// DefaultInventory returns the documented catalog defaults. Seeding inserts
// these rows for any product that has no inventory record yet.
func DefaultInventory() []InventoryItem {
	return []InventoryItem{
		{
			Product:          ProductSuxhuk,
			PricePerKg:       50.0,
			MinKg:            1,
			StepKg:           1,
			AvailableKg:      0,
			BatchThresholdKg: 15,
		},
		{
			Product:          ProductMishTeTeren,
			PricePerKg:       65.0,
			MinKg:            3,
			StepKg:           1,
			AvailableKg:      0,
			BatchThresholdKg: 15,
		},
	}
}
