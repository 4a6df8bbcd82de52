package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/ardit-bytyqi/suxhuk-ordering-api/config"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/controllers"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/models"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/services"
	"github.com/ardit-bytyqi/suxhuk-ordering-api/tests/testutil"
)

// OrderIntegrationTestSuite defines the test suite for order integration tests
type OrderIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// SetupSuite runs once before all tests
func (suite *OrderIntegrationTestSuite) SetupSuite() {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Set test environment variables
	testutil.MustSetTestEnvironment(suite.T())
	os.Setenv("PORT", "8080")

	// Load configuration
	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg
}

// SetupTest runs before each test
func (suite *OrderIntegrationTestSuite) SetupTest() {
	// Create in-memory database for testing
	suite.db = testutil.OpenTestDB(suite.T())

	// Set the database in config
	config.SetDB(suite.db)

	// Same catalog bootstrap the server performs at startup
	err := services.EnsureCatalogDefaults(suite.db)
	suite.NoError(err)

	// Create a new router for each test
	suite.router = gin.New()

	suite.router.GET("/customers", controllers.ListCustomers)
	suite.router.POST("/customers", controllers.UpsertCustomer)
	suite.router.GET("/customers/:id", controllers.GetCustomer)
	suite.router.PUT("/customers/:id", controllers.UpdateCustomer)

	suite.router.GET("/inventory", controllers.ListInventory)
	suite.router.POST("/inventory", controllers.UpsertInventory)
	suite.router.PUT("/inventory/:product", controllers.UpdateInventory)

	suite.router.GET("/orders", controllers.ListOrders)
	suite.router.POST("/orders", controllers.CreateOrder)
	suite.router.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

	suite.router.POST("/seed", controllers.SeedDefaults)
}

// TearDownTest runs after each test
func (suite *OrderIntegrationTestSuite) TearDownTest() {
	// Clean up database
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// postJSON sends a JSON body to the suite router and returns the recorder
func (suite *OrderIntegrationTestSuite) postJSON(method, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	bodyJSON, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	return w
}

// createCustomer inserts a customer through the API and returns its id
func (suite *OrderIntegrationTestSuite) createCustomer(name, email string) int {
	w := suite.postJSON(http.MethodPost, "/customers", map[string]interface{}{
		"name":  name,
		"email": email,
	})
	suite.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.NoError(err)

	data := response["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

// stockInventory replaces one product's inventory rule through the API
func (suite *OrderIntegrationTestSuite) stockInventory(product string, pricePerKg float64, minKg, stepKg int, availableKg float64, thresholdKg int) {
	w := suite.postJSON(http.MethodPut, "/inventory/"+product, map[string]interface{}{
		"product":            product,
		"price_per_kg":       pricePerKg,
		"min_kg":             minKg,
		"step_kg":            stepKg,
		"available_kg":       availableKg,
		"batch_threshold_kg": thresholdKg,
	})
	suite.Equal(http.StatusOK, w.Code)
}

// TestOrderWorkflow_PlaceTrackAndDebit tests the full order lifecycle
func (suite *OrderIntegrationTestSuite) TestOrderWorkflow_PlaceTrackAndDebit() {
	customerID := suite.createCustomer("Arben Hoxha", "arben@example.com")
	suite.stockInventory("suxhuk", 50.0, 1, 1, 10, 15)

	// Step 1: Place an order that exceeds the available stock
	w := suite.postJSON(http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": fmt.Sprintf("%d", customerID),
		"product":     "suxhuk",
		"quantity_kg": 12,
		"notes":       "For the weekend market",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var createResponse map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &createResponse)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), createResponse["success"].(bool))

	orderData := createResponse["data"].(map[string]interface{})
	orderID := int(orderData["id"].(float64))
	assert.Equal(suite.T(), 600.0, orderData["total_price_nzd"])
	assert.Equal(suite.T(), float64(0), orderData["batch_index"])
	assert.Equal(suite.T(), "received", orderData["status"])
	assert.Equal(suite.T(), "For the weekend market", orderData["notes"])

	// Step 2: The order debited the stock into a 2kg backlog
	var item models.InventoryItem
	err = suite.db.Where("product = ?", "suxhuk").First(&item).Error
	suite.NoError(err)
	assert.Equal(suite.T(), -2.0, item.AvailableKg)

	// Step 3: Move the order into production
	w = suite.postJSON(http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "in_production",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Step 4: The listing shows the updated order
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &listResponse)
	assert.NoError(suite.T(), err)

	orders := listResponse["data"].([]interface{})
	assert.Equal(suite.T(), 1, len(orders))

	listed := orders[0].(map[string]interface{})
	assert.Equal(suite.T(), float64(orderID), listed["id"])
	assert.Equal(suite.T(), "in_production", listed["status"])
}

// TestOrderSequence_BatchIndexesGrowWithBacklog tests the production grouping
// as consecutive orders drive the stock further negative
func (suite *OrderIntegrationTestSuite) TestOrderSequence_BatchIndexesGrowWithBacklog() {
	customerID := suite.createCustomer("Mirlinda Krasniqi", "mirlinda@example.com")
	suite.stockInventory("suxhuk", 50.0, 1, 1, 10, 15)

	quantities := []int{12, 15, 15}
	expectedBatches := []float64{0, 1, 2}

	for i, qty := range quantities {
		w := suite.postJSON(http.MethodPost, "/orders", map[string]interface{}{
			"customer_id": fmt.Sprintf("%d", customerID),
			"product":     "suxhuk",
			"quantity_kg": qty,
		})

		assert.Equal(suite.T(), http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(suite.T(), err)

		orderData := response["data"].(map[string]interface{})
		assert.Equal(suite.T(), expectedBatches[i], orderData["batch_index"],
			"Order %d should land in batch %.0f", i+1, expectedBatches[i])
	}

	// 10 - (12 + 15 + 15) = -32
	var item models.InventoryItem
	err := suite.db.Where("product = ?", "suxhuk").First(&item).Error
	suite.NoError(err)
	assert.Equal(suite.T(), -32.0, item.AvailableKg)
}

// TestOrderValidation_RulesComeFromInventory tests that the configured
// minimum and step are enforced and rejections leave no writes
func (suite *OrderIntegrationTestSuite) TestOrderValidation_RulesComeFromInventory() {
	customerID := suite.createCustomer("Fatos Berisha", "fatos@example.com")
	suite.stockInventory("mish_te_teren", 65.0, 3, 3, 20, 15)

	// Below the minimum
	w := suite.postJSON(http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": fmt.Sprintf("%d", customerID),
		"product":     "mish_te_teren",
		"quantity_kg": 2,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "BELOW_MINIMUM", errorData["code"])
	assert.Equal(suite.T(), "Minimum order is 3 kg", errorData["message"])

	// Off the step increment
	w = suite.postJSON(http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": fmt.Sprintf("%d", customerID),
		"product":     "mish_te_teren",
		"quantity_kg": 7,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	errorData = response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_INCREMENT", errorData["code"])
	assert.Equal(suite.T(), "Quantity must be in increments of 3 kg", errorData["message"])

	// A conforming quantity goes through
	w = suite.postJSON(http.MethodPost, "/orders", map[string]interface{}{
		"customer_id": fmt.Sprintf("%d", customerID),
		"product":     "mish_te_teren",
		"quantity_kg": 6,
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	orderData := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), 390.0, orderData["total_price_nzd"])

	// Only the accepted order exists and only it touched the stock
	var count int64
	suite.db.Model(&models.Order{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	var item models.InventoryItem
	err = suite.db.Where("product = ?", "mish_te_teren").First(&item).Error
	suite.NoError(err)
	assert.Equal(suite.T(), 14.0, item.AvailableKg)
}

// TestSeedEndpoint_RestoresCatalogDefaults tests the administrative reset
func (suite *OrderIntegrationTestSuite) TestSeedEndpoint_RestoresCatalogDefaults() {
	// Drift the catalog away from the defaults
	suite.stockInventory("suxhuk", 99.0, 5, 5, 42, 7)

	w := suite.postJSON(http.MethodPost, "/seed", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), response["success"].(bool))

	items := response["data"].([]interface{})
	assert.Equal(suite.T(), 2, len(items))

	// Both products are back on the documented defaults
	var item models.InventoryItem
	err = suite.db.Where("product = ?", "suxhuk").First(&item).Error
	suite.NoError(err)
	assert.Equal(suite.T(), 50.0, item.PricePerKg)
	assert.Equal(suite.T(), 1, item.MinKg)
	assert.Equal(suite.T(), 0.0, item.AvailableKg)
	assert.Equal(suite.T(), 15, item.BatchThresholdKg)

	err = suite.db.Where("product = ?", "mish_te_teren").First(&item).Error
	suite.NoError(err)
	assert.Equal(suite.T(), 65.0, item.PricePerKg)
	assert.Equal(suite.T(), 3, item.MinKg)
}

// TestStatusUpdate_UnknownOrderMutatesNothing tests the not-found path
func (suite *OrderIntegrationTestSuite) TestStatusUpdate_UnknownOrderMutatesNothing() {
	w := suite.postJSON(http.MethodPatch, "/orders/9999/status", map[string]interface{}{
		"status": "in_production",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), response["success"].(bool))

	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "ORDER_NOT_FOUND", errorData["code"])

	var count int64
	suite.db.Model(&models.Order{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestOrderIntegrationSuite runs the test suite
func TestOrderIntegrationSuite(t *testing.T) {
	suite.Run(t, new(OrderIntegrationTestSuite))
}
