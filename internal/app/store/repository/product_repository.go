package repository

import (
	"context"
	"errors"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Omit("Category").Create(product)
	return result.Error
}

// GetByID получает товар по ID с информацией о категории
func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// List получает товары, отсортированные по имени
// Опциональный фильтр по ID повторяет поведение списочного эндпоинта
func (r *productRepository) List(ctx context.Context, id *uint) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if id != nil {
		query = query.Where("id = ?", *id)
	}

	var products []entity.Product
	result := query.Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Update обновляет товар
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":         product.Name,
			"description":  product.Description,
			"manufacturer": product.Manufacturer,
			"category_id":  product.CategoryID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар; блокируется пока на товар ссылаются SKU
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var skuCount int64
		if err := tx.Model(&entity.SKU{}).Where("product_id = ?", id).Count(&skuCount).Error; err != nil {
			return err
		}
		if skuCount > 0 {
			return ErrProductHasSKUs
		}

		result := tx.Delete(&entity.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		return nil
	})
}
