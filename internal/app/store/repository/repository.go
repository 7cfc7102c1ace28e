package repository

import (
	"context"
	"errors"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrCategoryNotFound      = errors.New("product category not found")
	ErrCategoryHasProducts   = errors.New("cannot delete category with existing products")
	ErrCategoryCycle         = errors.New("category parent would create a cycle")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductHasSKUs        = errors.New("cannot delete product with existing skus")
	ErrAttributeTypeNotFound = errors.New("attribute type not found")
	ErrAttributeTypeInUse    = errors.New("cannot delete attribute type with existing attributes")
	ErrAttributeNotFound     = errors.New("attribute not found")
	ErrSKUNotFound           = errors.New("sku not found")
	ErrOrderNotFound         = errors.New("order not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.ProductCategory) error
	GetByID(ctx context.Context, id uint) (*entity.ProductCategory, error)
	GetAll(ctx context.Context) ([]entity.ProductCategory, error)
	GetSubtree(ctx context.Context, id uint) ([]entity.ProductCategory, error)
	Update(ctx context.Context, category *entity.ProductCategory) error
	Delete(ctx context.Context, id uint) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context, id *uint) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
}

type AttributeTypeRepository interface {
	Create(ctx context.Context, attributeType *entity.AttributeType) error
	GetByID(ctx context.Context, id uint) (*entity.AttributeType, error)
	List(ctx context.Context, productID *uint) ([]entity.AttributeType, error)
	Update(ctx context.Context, attributeType *entity.AttributeType) error
	Delete(ctx context.Context, id uint) error
}

// AttributeFilter параметры фильтрации списка атрибутов
type AttributeFilter struct {
	TypeID    *uint // атрибуты одного типа
	ProductID *uint // атрибуты, используемые SKU данного товара
}

type AttributeRepository interface {
	Create(ctx context.Context, attribute *entity.Attribute) error
	GetByID(ctx context.Context, id uint) (*entity.Attribute, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entity.Attribute, error)
	List(ctx context.Context, filter AttributeFilter) ([]entity.Attribute, error)
	Update(ctx context.Context, attribute *entity.Attribute) error
	Delete(ctx context.Context, id uint) error
}

type SKURepository interface {
	Create(ctx context.Context, sku *entity.SKU) error
	GetByID(ctx context.Context, id uint) (*entity.SKU, error)
	List(ctx context.Context, filter entity.SKUListFilter) ([]entity.SKU, error)
	Update(ctx context.Context, sku *entity.SKU) error
	ReplaceAttributes(ctx context.Context, sku *entity.SKU, attributes []entity.Attribute) error
	Delete(ctx context.Context, id uint) error
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type OrderRepository interface {
	// Create выполняет транзакцию создания заказа: адреса, контакт, заказ,
	// позиции и списание остатков SKU - всё атомарно
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)
}

// AutoMigrate создает/обновляет схему всех таблиц магазина
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.ProductCategory{},
		&entity.Product{},
		&entity.AttributeType{},
		&entity.Attribute{},
		&entity.SKU{},
		&entity.Address{},
		&entity.Contact{},
		&entity.Order{},
		&entity.OrderLine{},
	)
}
