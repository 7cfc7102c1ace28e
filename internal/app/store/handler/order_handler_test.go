package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService мок для OrderServiceInterface в тестах handler
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func setupOrderRouter(svc service.OrderServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewOrderHandler(svc)
	router.POST("/api/orders/", h.CreateOrder)
	router.GET("/api/orders/", h.ListOrders)
	router.GET("/api/orders/:id", h.GetOrder)
	router.PATCH("/api/orders/:id", h.UpdateOrderStatus)

	return router
}

func orderRequestBody() map[string]interface{} {
	address := map[string]interface{}{
		"country": "US",
		"street":  "1 Main st",
		"city":    "Springfield",
	}
	return map[string]interface{}{
		"bill_to": address,
		"ship_to": address,
		"contact": map[string]interface{}{
			"full_name": "John Doe",
			"email":     "john@example.com",
		},
		"order_line_set": []map[string]interface{}{
			{"sku": 1, "price": "0.0025", "currency": "BTC", "quantity": 1, "ordering": 0},
			{"sku": 2, "price": "0.0025", "currency": "BTC", "quantity": 2, "ordering": 1},
		},
	}
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doGET(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) entity.ErrorResponse {
	t.Helper()
	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// ===================== CreateOrder Tests =====================

func TestCreateOrderHandler_Success(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	created := &entity.Order{
		ID:     10,
		Status: entity.OrderStatusProcessing,
		OrderLines: []entity.OrderLine{
			{ID: 1, SKUID: 1, Quantity: 1, Ordering: 0, Price: decimal.RequireFromString("0.0025"), Currency: entity.CurrencyBTC},
			{ID: 2, SKUID: 2, Quantity: 2, Ordering: 1, Price: decimal.RequireFromString("0.0025"), Currency: entity.CurrencyBTC},
		},
	}

	var received *entity.CreateOrderRequest
	mockService.On("CreateOrder", mock.Anything, mock.AnythingOfType("*entity.CreateOrderRequest")).
		Run(func(args mock.Arguments) {
			received = args.Get(1).(*entity.CreateOrderRequest)
		}).
		Return(created, nil)

	w := doJSON(router, http.MethodPost, "/api/orders/", orderRequestBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, received)
	require.Len(t, received.OrderLineSet, 2)
	assert.Equal(t, uint(1), received.OrderLineSet[0].SKU)
	assert.Equal(t, "john@example.com", received.Contact.Email)

	var response entity.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, uint(10), response.ID)
	assert.Equal(t, entity.OrderStatusProcessing, response.Status)
	assert.Len(t, response.OrderLines, 2)
}

func TestCreateOrderHandler_MissingEmail(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	body := orderRequestBody()
	body["contact"] = map[string]interface{}{"full_name": "John Doe"}

	w := doJSON(router, http.MethodPost, "/api/orders/", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Validation failed", response.Error)
	assert.Contains(t, response.Fields, "Contact.Email")

	mockService.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrderHandler_InvalidEmail(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	body := orderRequestBody()
	body["contact"] = map[string]interface{}{"full_name": "John Doe", "email": "not-an-email"}

	w := doJSON(router, http.MethodPost, "/api/orders/", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "Contact.Email")
}

func TestCreateOrderHandler_EmptyOrderLineSet(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	body := orderRequestBody()
	body["order_line_set"] = []map[string]interface{}{}

	w := doJSON(router, http.MethodPost, "/api/orders/", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "OrderLineSet")
}

func TestCreateOrderHandler_UnknownSKU(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	mockService.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, service.ErrOrderSKUNotFound)

	w := doJSON(router, http.MethodPost, "/api/orders/", orderRequestBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "OrderLineSet.SKU")
}

// ===================== GetOrder / ListOrders Tests =====================

func TestGetOrderHandler_NotFound(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	mockService.On("GetOrder", mock.Anything, uint(42)).Return(nil, service.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderHandler_InvalidID(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

func TestListOrdersHandler(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	mockService.On("ListOrders", mock.Anything).Return([]entity.Order{{ID: 2}, {ID: 1}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.OrderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	require.Len(t, response.Orders, 2)
	assert.Equal(t, uint(2), response.Orders[0].ID)
}

// ===================== UpdateOrderStatus Tests =====================

func TestUpdateOrderStatusHandler_Success(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	mockService.On("UpdateOrderStatus", mock.Anything, uint(10), entity.OrderStatusCompleted).
		Return(&entity.Order{ID: 10, Status: entity.OrderStatusCompleted}, nil)

	w := doJSON(router, http.MethodPatch, "/api/orders/10", map[string]string{"status": "completed"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "completed", response["status"])
}

func TestUpdateOrderStatusHandler_UnknownStatus(t *testing.T) {
	mockService := new(MockOrderService)
	router := setupOrderRouter(mockService)

	w := doJSON(router, http.MethodPatch, "/api/orders/10", map[string]string{"status": "shipped"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Fields, "Status")

	mockService.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}
