package repository

import (
	"context"
	"errors"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

type attributeTypeRepository struct {
	db *gorm.DB
}

// NewAttributeTypeRepository создает новый репозиторий типов атрибутов
func NewAttributeTypeRepository(db *gorm.DB) AttributeTypeRepository {
	return &attributeTypeRepository{db: db}
}

// Create создает новый тип атрибута
func (r *attributeTypeRepository) Create(ctx context.Context, attributeType *entity.AttributeType) error {
	result := r.db.WithContext(ctx).Omit("Attributes").Create(attributeType)
	return result.Error
}

// GetByID получает тип атрибута с вложенными атрибутами
func (r *attributeTypeRepository) GetByID(ctx context.Context, id uint) (*entity.AttributeType, error) {
	var attributeType entity.AttributeType
	result := r.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("attributes.name ASC")
		}).
		First(&attributeType, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeTypeNotFound
		}
		return nil, result.Error
	}

	return &attributeType, nil
}

// List получает типы атрибутов с вложенными атрибутами и их SKU
// Атрибуты отсортированы по имени, SKU каждого атрибута - по артикулу,
// сами типы - по имени. Опциональный фильтр: типы, используемые SKU товара
func (r *attributeTypeRepository) List(ctx context.Context, productID *uint) ([]entity.AttributeType, error) {
	query := r.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("attributes.name ASC")
		}).
		Preload("Attributes.SKUs", func(db *gorm.DB) *gorm.DB {
			return db.Order("skus.number ASC")
		}).
		Order("name ASC")

	if productID != nil {
		query = query.Where(
			"id IN (SELECT a.type_id FROM attributes a"+
				" JOIN sku_attributes sa ON sa.attribute_id = a.id"+
				" JOIN skus s ON s.id = sa.sku_id WHERE s.product_id = ?)",
			*productID,
		)
	}

	var attributeTypes []entity.AttributeType
	result := query.Find(&attributeTypes)
	if result.Error != nil {
		return nil, result.Error
	}

	return attributeTypes, nil
}

// Update обновляет тип атрибута
func (r *attributeTypeRepository) Update(ctx context.Context, attributeType *entity.AttributeType) error {
	result := r.db.WithContext(ctx).Model(&entity.AttributeType{}).
		Where("id = ?", attributeType.ID).
		Updates(map[string]interface{}{
			"name":        attributeType.Name,
			"description": attributeType.Description,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAttributeTypeNotFound
	}

	return nil
}

// Delete удаляет тип атрибута; блокируется пока на тип ссылаются атрибуты
func (r *attributeTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attributeCount int64
		if err := tx.Model(&entity.Attribute{}).Where("type_id = ?", id).Count(&attributeCount).Error; err != nil {
			return err
		}
		if attributeCount > 0 {
			return ErrAttributeTypeInUse
		}

		result := tx.Delete(&entity.AttributeType{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAttributeTypeNotFound
		}

		return nil
	})
}

type attributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository создает новый репозиторий атрибутов
func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

// Create создает новый атрибут
func (r *attributeRepository) Create(ctx context.Context, attribute *entity.Attribute) error {
	result := r.db.WithContext(ctx).Omit("Type", "SKUs").Create(attribute)
	return result.Error
}

// GetByID получает атрибут с его типом
func (r *attributeRepository) GetByID(ctx context.Context, id uint) (*entity.Attribute, error) {
	var attribute entity.Attribute
	result := r.db.WithContext(ctx).Preload("Type").First(&attribute, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, result.Error
	}

	return &attribute, nil
}

// GetByIDs получает атрибуты по списку ID
// Если какой-то из ID не существует, возвращает ErrAttributeNotFound
func (r *attributeRepository) GetByIDs(ctx context.Context, ids []uint) ([]entity.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var attributes []entity.Attribute
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&attributes)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(attributes) != len(ids) {
		return nil, ErrAttributeNotFound
	}

	return attributes, nil
}

// List получает атрибуты с типами, отсортированные по имени
// Фильтры: по типу атрибута и по товару (атрибуты любого SKU товара)
func (r *attributeRepository) List(ctx context.Context, filter AttributeFilter) ([]entity.Attribute, error) {
	query := r.db.WithContext(ctx).Preload("Type").Order("name ASC")

	if filter.TypeID != nil {
		query = query.Where("type_id = ?", *filter.TypeID)
	}
	if filter.ProductID != nil {
		query = query.Where(
			"id IN (SELECT sa.attribute_id FROM sku_attributes sa"+
				" JOIN skus s ON s.id = sa.sku_id WHERE s.product_id = ?)",
			*filter.ProductID,
		)
	}

	var attributes []entity.Attribute
	result := query.Find(&attributes)
	if result.Error != nil {
		return nil, result.Error
	}

	return attributes, nil
}

// Update обновляет атрибут
func (r *attributeRepository) Update(ctx context.Context, attribute *entity.Attribute) error {
	result := r.db.WithContext(ctx).Model(&entity.Attribute{}).
		Where("id = ?", attribute.ID).
		Updates(map[string]interface{}{
			"name":        attribute.Name,
			"description": attribute.Description,
			"type_id":     attribute.TypeID,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAttributeNotFound
	}

	return nil
}

// Delete удаляет атрибут вместе со связками в sku_attributes
func (r *attributeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM sku_attributes WHERE attribute_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Attribute{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAttributeNotFound
		}

		return nil
	})
}
