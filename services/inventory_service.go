package services

import (
	"errors"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
	"gorm.io/gorm"
)

// GetInventoryByProduct loads the inventory rule for a product.
// Returns gorm.ErrRecordNotFound when the product has no rule yet;
// callers decide how to surface that.
func GetInventoryByProduct(db *gorm.DB, product models.Product) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := db.Where("product = ?", product).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertInventory creates the inventory record for incoming.Product or
// fully overwrites the existing one, including available_kg. Returns the
// stored record and whether it was newly created.
func UpsertInventory(db *gorm.DB, incoming models.InventoryItem) (*models.InventoryItem, bool, error) {
	var existing models.InventoryItem
	err := db.Where("product = ?", incoming.Product).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&incoming).Error; err != nil {
			return nil, false, err
		}
		return &incoming, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Save writes every column, so zero values like available_kg = 0
	// overwrite instead of being skipped
	incoming.ID = existing.ID
	incoming.CreatedAt = existing.CreatedAt
	if err := db.Save(&incoming).Error; err != nil {
		return nil, false, err
	}
	return &incoming, false, nil
}

// DebitInventory subtracts quantityKg from the product's available stock
// as a single conditional update, then re-reads the row inside the same
// transaction. The balance may go negative; that is the backlog state the
// batching logic feeds on.
func DebitInventory(tx *gorm.DB, product models.Product, quantityKg int) (*models.InventoryItem, error) {
	res := tx.Model(&models.InventoryItem{}).
		Where("product = ?", product).
		Update("available_kg", gorm.Expr("available_kg - ?", quantityKg))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var item models.InventoryItem
	if err := tx.Where("product = ?", product).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// EnsureCatalogDefaults creates the default inventory rows for any product
// that has none yet. Existing rows are left untouched, so it is safe to run
// on every startup.
func EnsureCatalogDefaults(db *gorm.DB) error {
	for _, item := range models.DefaultInventory() {
		var existing models.InventoryItem
		err := db.Where("product = ?", item.Product).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaults resets both catalog products to their documented defaults,
// overwriting any existing rules and stock balances. Returns the seeded rows.
func SeedDefaults(db *gorm.DB) ([]models.InventoryItem, error) {
	defaults := models.DefaultInventory()
	items := make([]models.InventoryItem, 0, len(defaults))
	for _, def := range defaults {
		item, _, err := UpsertInventory(db, def)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
