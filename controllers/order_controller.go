package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/config"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/services"
)

// CreateOrderRequest represents the request body for placing an order.
// customer_id arrives as a string to match the storefront client.
type CreateOrderRequest struct {
	CustomerID string         `json:"customer_id" binding:"required"`
	Product    models.Product `json:"product" binding:"required,oneof=suxhuk mish_te_teren"`
	QuantityKg int            `json:"quantity_kg" binding:"required,gt=0"`
	Notes      *string        `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for moving an order
// through the production pipeline
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=received in_production ready_for_collection"`
}

// CreateOrder handles POST /orders - places an order through the pricing and
// batching engine
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	customerID, err := strconv.ParseUint(req.CustomerID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REFERENCE",
				"message": "Invalid customer id",
			},
		})
		return
	}

	db := config.GetDB()

	order, err := services.PlaceOrder(db, uint(customerID), req.Product, req.QuantityKg, req.Notes)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			c.JSON(svcErr.Status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    svcErr.Code,
					"message": svcErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /orders - lists all orders oldest first
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.Order("created_at ASC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PATCH /orders/:id/status - overwrites an order's
// production status
func UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REFERENCE",
				"message": "Invalid order id",
			},
		})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
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

	order, err := services.UpdateOrderStatus(db, uint(id), req.Status)
	if err != nil {
		if svcErr, ok := err.(*services.ServiceError); ok {
			c.JSON(svcErr.Status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    svcErr.Code,
					"message": svcErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
