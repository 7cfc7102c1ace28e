package service

import (
	"context"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
)

// CatalogServiceInterface бизнес-логика каталога для handler layer
type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.ProductCategory, error)
	GetCategory(ctx context.Context, id uint) (*entity.ProductCategory, error)
	GetAllCategories(ctx context.Context) ([]entity.ProductCategory, error)
	UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.ProductCategory, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	ListProducts(ctx context.Context, id *uint) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uint) error

	CreateAttributeType(ctx context.Context, req *entity.CreateAttributeTypeRequest) (*entity.AttributeType, error)
	GetAttributeType(ctx context.Context, id uint) (*entity.AttributeType, error)
	ListAttributeTypes(ctx context.Context, productID *uint) ([]entity.AttributeType, error)
	UpdateAttributeType(ctx context.Context, id uint, req *entity.UpdateAttributeTypeRequest) (*entity.AttributeType, error)
	DeleteAttributeType(ctx context.Context, id uint) error

	CreateAttribute(ctx context.Context, req *entity.CreateAttributeRequest) (*entity.Attribute, error)
	GetAttribute(ctx context.Context, id uint) (*entity.Attribute, error)
	ListAttributes(ctx context.Context, filter repository.AttributeFilter) ([]entity.Attribute, error)
	UpdateAttribute(ctx context.Context, id uint, req *entity.UpdateAttributeRequest) (*entity.Attribute, error)
	DeleteAttribute(ctx context.Context, id uint) error

	CreateSKU(ctx context.Context, req *entity.CreateSKURequest) (*entity.SKU, error)
	GetSKU(ctx context.Context, id uint) (*entity.SKU, error)
	ListSKUs(ctx context.Context, filter entity.SKUListFilter) ([]entity.SKU, error)
	UpdateSKU(ctx context.Context, id uint, req *entity.UpdateSKURequest) (*entity.SKU, error)
	DeleteSKU(ctx context.Context, id uint) error
}

// OrderServiceInterface бизнес-логика заказов для handler layer
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, id uint) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error)
}
