package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
	"widgetfactory/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService мок для CatalogServiceInterface в тестах handler
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.ProductCategory, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductCategory), args.Error(1)
}

func (m *MockCatalogService) GetCategory(ctx context.Context, id uint) (*entity.ProductCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductCategory), args.Error(1)
}

func (m *MockCatalogService) GetAllCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductCategory), args.Error(1)
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.ProductCategory, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductCategory), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, id *uint) ([]entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateAttributeType(ctx context.Context, req *entity.CreateAttributeTypeRequest) (*entity.AttributeType, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AttributeType), args.Error(1)
}

func (m *MockCatalogService) GetAttributeType(ctx context.Context, id uint) (*entity.AttributeType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AttributeType), args.Error(1)
}

func (m *MockCatalogService) ListAttributeTypes(ctx context.Context, productID *uint) ([]entity.AttributeType, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AttributeType), args.Error(1)
}

func (m *MockCatalogService) UpdateAttributeType(ctx context.Context, id uint, req *entity.UpdateAttributeTypeRequest) (*entity.AttributeType, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AttributeType), args.Error(1)
}

func (m *MockCatalogService) DeleteAttributeType(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateAttribute(ctx context.Context, req *entity.CreateAttributeRequest) (*entity.Attribute, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attribute), args.Error(1)
}

func (m *MockCatalogService) GetAttribute(ctx context.Context, id uint) (*entity.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attribute), args.Error(1)
}

func (m *MockCatalogService) ListAttributes(ctx context.Context, filter repository.AttributeFilter) ([]entity.Attribute, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attribute), args.Error(1)
}

func (m *MockCatalogService) UpdateAttribute(ctx context.Context, id uint, req *entity.UpdateAttributeRequest) (*entity.Attribute, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Attribute), args.Error(1)
}

func (m *MockCatalogService) DeleteAttribute(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateSKU(ctx context.Context, req *entity.CreateSKURequest) (*entity.SKU, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SKU), args.Error(1)
}

func (m *MockCatalogService) GetSKU(ctx context.Context, id uint) (*entity.SKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SKU), args.Error(1)
}

func (m *MockCatalogService) ListSKUs(ctx context.Context, filter entity.SKUListFilter) ([]entity.SKU, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SKU), args.Error(1)
}

func (m *MockCatalogService) UpdateSKU(ctx context.Context, id uint, req *entity.UpdateSKURequest) (*entity.SKU, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SKU), args.Error(1)
}

func (m *MockCatalogService) DeleteSKU(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupCatalogRouter(svc service.CatalogServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewCatalogHandler(svc)
	router.POST("/api/categories/", h.CreateCategory)
	router.GET("/api/categories/", h.GetAllCategories)
	router.GET("/api/categories/:id", h.GetCategory)
	router.PUT("/api/categories/:id", h.ReplaceCategory)
	router.PATCH("/api/categories/:id", h.UpdateCategory)
	router.DELETE("/api/categories/:id", h.DeleteCategory)

	router.POST("/api/products/", h.CreateProduct)
	router.GET("/api/products/", h.ListProducts)
	router.GET("/api/products/:id", h.GetProduct)
	router.PATCH("/api/products/:id", h.UpdateProduct)
	router.DELETE("/api/products/:id", h.DeleteProduct)

	return router
}

// ===================== Category Tests =====================

func TestCreateCategoryHandler_Success(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("CreateCategory", mock.Anything, mock.AnythingOfType("*entity.CreateCategoryRequest")).
		Return(&entity.ProductCategory{ID: 1, Name: "Paint"}, nil)

	w := doJSON(router, http.MethodPost, "/api/categories/", map[string]interface{}{"name": "Paint"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCategoryHandler_MissingName(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	w := doJSON(router, http.MethodPost, "/api/categories/", map[string]interface{}{"description": "no name"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "Name")
	mockService.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestGetCategoryHandler_NotFound(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("GetCategory", mock.Anything, uint(42)).Return(nil, service.ErrCategoryNotFound)

	w := doGET(router, "/api/categories/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceCategoryHandler_SendsAllFields(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	var received *entity.UpdateCategoryRequest
	mockService.On("UpdateCategory", mock.Anything, uint(1), mock.AnythingOfType("*entity.UpdateCategoryRequest")).
		Run(func(args mock.Arguments) {
			received = args.Get(2).(*entity.UpdateCategoryRequest)
		}).
		Return(&entity.ProductCategory{ID: 1, Name: "Paint"}, nil)

	w := doJSON(router, http.MethodPut, "/api/categories/1", map[string]interface{}{"name": "Paint"})

	assert.Equal(t, http.StatusOK, w.Code)

	// PUT передает полный payload: отсутствующие поля затираются
	require.NotNil(t, received)
	require.NotNil(t, received.Name)
	assert.Equal(t, "Paint", *received.Name)
	require.NotNil(t, received.Description)
	assert.Empty(t, *received.Description)
	assert.Nil(t, received.ParentID)
}

func TestUpdateCategoryHandler_CycleRejected(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("UpdateCategory", mock.Anything, uint(1), mock.Anything).
		Return(nil, service.ErrCategoryCycle)

	w := doJSON(router, http.MethodPatch, "/api/categories/1", map[string]interface{}{"parent_id": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "ParentID")
}

func TestDeleteCategoryHandler_Conflict(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("DeleteCategory", mock.Anything, uint(1)).Return(service.ErrCategoryHasProducts)

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// ===================== Product Tests =====================

func TestCreateProductHandler_UnknownCategory(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, service.ErrCategoryNotFound)

	w := doJSON(router, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":         "Wall paint",
		"manufacturer": "Acme",
		"category_id":  42,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeError(t, w)
	assert.Contains(t, response.Fields, "CategoryID")
}

func TestListProductsHandler_FilterByID(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	id := uint(1)
	mockService.On("ListProducts", mock.Anything, &id).
		Return([]entity.Product{{ID: 1, Name: "Paint"}}, nil)

	w := doGET(router, "/api/products/?id=1")

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "ListProducts", mock.Anything, &id)
}

func TestListProductsHandler_InvalidIDQuery(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	w := doGET(router, "/api/products/?id=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
}

func TestDeleteProductHandler_Conflict(t *testing.T) {
	mockService := new(MockCatalogService)
	router := setupCatalogRouter(mockService)

	mockService.On("DeleteProduct", mock.Anything, uint(1)).Return(service.ErrProductHasSKUs)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
