package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/utils"
	"gorm.io/gorm"
)

// PlaceOrder runs the whole order intake inside one transaction: the
// customer and the product's inventory rule must exist, the quantity must
// respect the product's minimum and step, then the order is priced, stock
// is debited and the order is assigned to a production batch based on the
// resulting deficit. Nothing is persisted when any precondition fails.
func PlaceOrder(db *gorm.DB, customerID uint, product models.Product, quantityKg int, notes *string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ServiceError{
					Code:    "CUSTOMER_NOT_FOUND",
					Message: "Customer not found",
					Status:  http.StatusNotFound,
				}
			}
			return err
		}

		inv, err := GetInventoryByProduct(tx, product)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ServiceError{
					Code:    "NOT_CONFIGURED",
					Message: "Inventory for product not configured yet",
					Status:  http.StatusBadRequest,
				}
			}
			return err
		}

		if quantityKg < inv.MinKg {
			return &ServiceError{
				Code:    "BELOW_MINIMUM",
				Message: fmt.Sprintf("Minimum order is %d kg", inv.MinKg),
				Status:  http.StatusBadRequest,
			}
		}

		if quantityKg%inv.StepKg != 0 {
			return &ServiceError{
				Code:    "INVALID_INCREMENT",
				Message: fmt.Sprintf("Quantity must be in increments of %d kg", inv.StepKg),
				Status:  http.StatusBadRequest,
			}
		}

		total := utils.OrderTotal(inv.PricePerKg, quantityKg)

		// The debit and the re-read happen inside this transaction, so the
		// batch index is computed from the balance this order produced
		inv, err = DebitInventory(tx, product, quantityKg)
		if err != nil {
			return err
		}

		batch := utils.BatchIndex(utils.Deficit(inv.AvailableKg), inv.BatchThresholdKg)

		order = models.Order{
			CustomerID:    customerID,
			Product:       product,
			QuantityKg:    quantityKg,
			TotalPriceNZD: total,
			Status:        models.StatusReceived,
			Notes:         notes,
			BatchIndex:    &batch,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus overwrites an order's status and refreshes updated_at.
// Transitions are unconditional; any status can replace any other.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{
				Code:    "ORDER_NOT_FOUND",
				Message: "Order not found",
				Status:  http.StatusNotFound,
			}
		}
		return nil, err
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
