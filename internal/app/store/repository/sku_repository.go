package repository

import (
	"context"
	"errors"
	"strings"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

type skuRepository struct {
	db *gorm.DB
}

// NewSKURepository создает новый репозиторий SKU
func NewSKURepository(db *gorm.DB) SKURepository {
	return &skuRepository{db: db}
}

// attributesByTypeName сортирует вложенные атрибуты SKU по имени типа атрибута
func attributesByTypeName(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN attribute_types ON attribute_types.id = attributes.type_id").
		Order("attribute_types.name ASC")
}

// Create создает новый SKU вместе со связками атрибутов
// Атрибуты должны быть существующими записями, загруженными из БД
func (r *skuRepository) Create(ctx context.Context, sku *entity.SKU) error {
	result := r.db.WithContext(ctx).Omit("Product", "Attributes.*").Create(sku)
	return result.Error
}

// GetByID получает SKU с товаром и атрибутами (отсортированными по имени типа)
func (r *skuRepository) GetByID(ctx context.Context, id uint) (*entity.SKU, error) {
	var sku entity.SKU
	result := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Attributes", attributesByTypeName).
		Preload("Attributes.Type").
		First(&sku, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, result.Error
	}

	return &sku, nil
}

// List получает SKU, отсортированные по артикулу, с вложенными атрибутами
// Фильтр по атрибутам применяется пересечением: по одному подзапросу на значение,
// так что SKU должен нести каждый из перечисленных атрибутов
func (r *skuRepository) List(ctx context.Context, filter entity.SKUListFilter) ([]entity.SKU, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Attributes", attributesByTypeName).
		Preload("Attributes.Type").
		Order("skus.number ASC")

	for _, attributeID := range filter.AttributeIDs {
		query = query.Where(
			"skus.id IN (SELECT sku_id FROM sku_attributes WHERE attribute_id = ?)",
			attributeID,
		)
	}

	if filter.ProductID != nil {
		query = query.Where("skus.product_id = ?", *filter.ProductID)
	}

	if filter.Search != "" {
		query = query.Where(
			"skus.id IN (SELECT sa.sku_id FROM sku_attributes sa"+
				" JOIN attributes a ON a.id = sa.attribute_id WHERE LOWER(a.name) LIKE ?)",
			"%"+strings.ToLower(filter.Search)+"%",
		)
	}

	var skus []entity.SKU
	result := query.Find(&skus)
	if result.Error != nil {
		return nil, result.Error
	}

	return skus, nil
}

// Update обновляет поля SKU (без связок атрибутов)
func (r *skuRepository) Update(ctx context.Context, sku *entity.SKU) error {
	result := r.db.WithContext(ctx).Model(&entity.SKU{}).Where("id = ?", sku.ID).
		Updates(map[string]interface{}{
			"number":     sku.Number,
			"product_id": sku.ProductID,
			"price":      sku.Price,
			"currency":   sku.Currency,
			"quantity":   sku.Quantity,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSKUNotFound
	}

	return nil
}

// ReplaceAttributes заменяет набор атрибутов SKU
func (r *skuRepository) ReplaceAttributes(ctx context.Context, sku *entity.SKU, attributes []entity.Attribute) error {
	if err := r.db.WithContext(ctx).Model(sku).Association("Attributes").Replace(attributes); err != nil {
		return err
	}
	sku.Attributes = attributes
	return nil
}

// Delete удаляет SKU вместе со связками атрибутов
func (r *skuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sku_attributes WHERE sku_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.SKU{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSKUNotFound
		}

		return nil
	})
}

// CountLowStock считает SKU с остатком ниже порога (для фонового мониторинга)
func (r *skuRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.SKU{}).
		Where("quantity < ?", threshold).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
