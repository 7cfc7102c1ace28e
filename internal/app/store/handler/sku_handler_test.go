package handler

import (
	"net/http"
	"testing"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSKURouter(svc service.CatalogServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewSKUHandler(svc)
	router.POST("/api/skus/", h.CreateSKU)
	router.GET("/api/skus/", h.ListSKUs)
	router.GET("/api/skus/:id", h.GetSKU)
	router.PATCH("/api/skus/:id", h.UpdateSKU)
	router.DELETE("/api/skus/:id", h.DeleteSKU)

	return router
}

func TestListSKUsHandler_ParsesFilters(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	productID := uint(3)
	expected := entity.SKUListFilter{
		AttributeIDs: []uint{1, 2},
		ProductID:    &productID,
		Search:       "red",
	}
	mockService.On("ListSKUs", mock.Anything, expected).
		Return([]entity.SKU{{ID: 1, Number: "PR-RD-SM"}}, nil)

	w := doGET(router, "/api/skus/?attributes=1,2&product_id=3&search=red")

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.SKUListResponse
	require.NoError(t, decodeJSON(w, &response))
	assert.Equal(t, 1, response.Total)
	mockService.AssertCalled(t, "ListSKUs", mock.Anything, expected)
}

func TestListSKUsHandler_NoFilters(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	mockService.On("ListSKUs", mock.Anything, entity.SKUListFilter{}).
		Return([]entity.SKU{}, nil)

	w := doGET(router, "/api/skus/")

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "ListSKUs", mock.Anything, entity.SKUListFilter{})
}

func TestListSKUsHandler_InvalidAttributesQuery(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	w := doGET(router, "/api/skus/?attributes=1,abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListSKUs", mock.Anything, mock.Anything)
}

func TestCreateSKUHandler_UnknownAttribute(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	mockService.On("CreateSKU", mock.Anything, mock.Anything).Return(nil, service.ErrAttributeNotFound)

	w := doJSON(router, http.MethodPost, "/api/skus/", map[string]interface{}{
		"number":        "PR-RD-SM",
		"product_id":    1,
		"price":         "0.0025",
		"currency":      "BTC",
		"quantity":      100,
		"attribute_ids": []uint{9},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "AttributeIDs")
}

func TestCreateSKUHandler_MissingNumber(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	w := doJSON(router, http.MethodPost, "/api/skus/", map[string]interface{}{
		"product_id": 1,
		"price":      "0.0025",
		"currency":   "BTC",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "Number")
	mockService.AssertNotCalled(t, "CreateSKU", mock.Anything, mock.Anything)
}

func TestGetSKUHandler_NotFound(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	mockService.On("GetSKU", mock.Anything, uint(42)).Return(nil, service.ErrSKUNotFound)

	w := doGET(router, "/api/skus/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSKUHandler_UnknownProduct(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupSKURouter(mockService)

	mockService.On("UpdateSKU", mock.Anything, uint(5), mock.Anything).
		Return(nil, service.ErrProductNotFound)

	w := doJSON(router, http.MethodPatch, "/api/skus/5", map[string]interface{}{"product_id": 42})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "ProductID")
}
