package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/config"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
)

// PaymentMethodRequest represents one stored payment method on a customer
type PaymentMethodRequest struct {
	Label   string            `json:"label" binding:"required"`
	Brand   *string           `json:"brand"`
	Last4   *string           `json:"last4"`
	Details datatypes.JSONMap `json:"details"`
}

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Email          string                 `json:"email" binding:"required,email"`
	Phone          *string                `json:"phone"`
	Address        *string                `json:"address"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" binding:"omitempty,dive"`
}

// ListCustomers handles GET /customers - lists all customers
func ListCustomers(c *gin.Context) {
	db := config.GetDB()

	var customers []models.Customer
	if err := db.Preload("PaymentMethods").
		Order("created_at ASC").
		Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// UpsertCustomer handles POST /customers - creates a customer or, when the
// email is already known, overwrites that customer's details
func UpsertCustomer(c *gin.Context) {
	var req CustomerRequest
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

	var customer models.Customer
	err := db.Where("email = ?", req.Email).First(&customer).Error
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !created {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up customer",
			},
		})
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if created {
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		return replacePaymentMethods(tx, customer.ID, req.PaymentMethods)
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save customer",
			},
		})
		return
	}

	if err := db.Preload("PaymentMethods").First(&customer, customer.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load customer details",
			},
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"data":    customer,
	})
}

// GetCustomer handles GET /customers/:id - fetches a single customer
func GetCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
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

	var customer models.Customer
	if err := db.Preload("PaymentMethods").First(&customer, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// UpdateCustomer handles PUT /customers/:id - overwrites a customer's details
func UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
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

	var req CustomerRequest
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

	var customer models.Customer
	if err := db.First(&customer, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer",
			},
		})
		return
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		return replacePaymentMethods(tx, customer.ID, req.PaymentMethods)
	})
	if txErr != nil {
		// Check for duplicate email (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(txErr.Error())
		if strings.Contains(errMsg, "duplicate") ||
			strings.Contains(errMsg, "unique constraint") ||
			strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "A customer with this email already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update customer",
			},
		})
		return
	}

	if err := db.Preload("PaymentMethods").First(&customer, customer.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load customer details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// replacePaymentMethods swaps a customer's stored payment methods for the
// incoming set
func replacePaymentMethods(tx *gorm.DB, customerID uint, methods []PaymentMethodRequest) error {
	if err := tx.Where("customer_id = ?", customerID).Delete(&models.PaymentMethod{}).Error; err != nil {
		return err
	}

	for _, m := range methods {
		method := models.PaymentMethod{
			CustomerID: customerID,
			Label:      m.Label,
			Brand:      m.Brand,
			Last4:      m.Last4,
			Details:    m.Details,
		}
		if err := tx.Create(&method).Error; err != nil {
			return err
		}
	}
	return nil
}
