package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/config"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/services"
)

// InventoryRequest represents the request body for configuring a product's
// pricing and stock rules. Pointer fields distinguish an omitted value from
// an explicit zero: price is required but may be zero, while a zero step or
// threshold is rejected rather than coerced to the default.
type InventoryRequest struct {
	Product          models.Product `json:"product" binding:"required,oneof=suxhuk mish_te_teren"`
	PricePerKg       *float64       `json:"price_per_kg" binding:"required,min=0"`
	MinKg            int            `json:"min_kg" binding:"required,min=1"`
	StepKg           *int           `json:"step_kg" binding:"omitempty,min=1"`
	AvailableKg      float64        `json:"available_kg"`
	BatchThresholdKg *int           `json:"batch_threshold_kg" binding:"omitempty,min=1"`
}

// toModel converts the request into an inventory record, filling the
// catalog defaults for omitted optional fields
func (r InventoryRequest) toModel() models.InventoryItem {
	item := models.InventoryItem{
		Product:          r.Product,
		PricePerKg:       *r.PricePerKg,
		MinKg:            r.MinKg,
		StepKg:           1,
		AvailableKg:      r.AvailableKg,
		BatchThresholdKg: 15,
	}
	if r.StepKg != nil {
		item.StepKg = *r.StepKg
	}
	if r.BatchThresholdKg != nil {
		item.BatchThresholdKg = *r.BatchThresholdKg
	}
	return item
}

// ListInventory handles GET /inventory - lists the configured catalog.
// This is a pure read; defaults are seeded at startup and via POST /seed.
func ListInventory(c *gin.Context) {
	db := config.GetDB()

	var items []models.InventoryItem
	if err := db.Order("created_at ASC").Find(&items).Error; err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch inventory",
			},
		})
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// UpsertInventory handles POST /inventory - creates or fully overwrites the
// rule record for the product named in the body
func UpsertInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	item, created, err := services.UpsertInventory(db, req.toModel())
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save inventory item",
			},
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.PureJSON(status, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateInventory handles PUT /inventory/:product - overwrites an existing
// rule record. The body's product must match the path.
func UpdateInventory(c *gin.Context) {
	product := c.Param("product")

	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if string(req.Product) != product {
		c.PureJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PATH_BODY_MISMATCH",
				"message": "Product path and body mismatch",
			},
		})
		return
	}

	db := config.GetDB()

	if _, err := services.GetInventoryByProduct(db, req.Product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.PureJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVENTORY_NOT_FOUND",
					"message": "Inventory item not found",
				},
			})
			return
		}
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch inventory item",
			},
		})
		return
	}

	item, _, err := services.UpsertInventory(db, req.toModel())
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update inventory item",
			},
		})
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// SeedDefaults handles POST /seed - resets both catalog products to their
// documented default rules and zero stock
func SeedDefaults(c *gin.Context) {
	db := config.GetDB()

	items, err := services.SeedDefaults(db)
	if err != nil {
		c.PureJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to seed inventory defaults",
			},
		})
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}
