package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
)

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	// Verify it was set
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// OpenTestDB opens a fresh in-memory database with every table migrated.
// Closing is left to the caller so suites can hold one handle across tests.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(&models.Customer{}, &models.PaymentMethod{}, &models.InventoryItem{}, &models.Order{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanTables deletes all rows between tests, children before parents
func CleanTables(db *gorm.DB) {
	db.Exec("DELETE FROM payment_methods")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM inventory")
}
