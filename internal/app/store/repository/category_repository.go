package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий товаров
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create создает новую категорию и вычисляет её материализованный путь
// Путь зависит от сгенерированного ID, поэтому строка обновляется в той же транзакции
func (r *categoryRepository) Create(ctx context.Context, category *entity.ProductCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parentPath string
		if category.ParentID != nil {
			var parent entity.ProductCategory
			if err := tx.First(&parent, "id = ?", *category.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return fmt.Errorf("failed to load parent category: %w", err)
			}
			parentPath = strings.TrimSuffix(parent.Path, "/")
		}

		if err := tx.Omit("Children").Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		category.Path = fmt.Sprintf("%s/%d/", parentPath, category.ID)
		if err := tx.Model(category).UpdateColumn("path", category.Path).Error; err != nil {
			return fmt.Errorf("failed to set category path: %w", err)
		}

		return nil
	})
}

// GetByID получает категорию с дочерними категориями, отсортированными по имени
func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*entity.ProductCategory, error) {
	var category entity.ProductCategory
	result := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_categories.name ASC")
		}).
		First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// GetAll получает все категории, отсортированные по имени
// Порядок по имени среди соседей - инвариант дерева категорий
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.ProductCategory, error) {
	var categories []entity.ProductCategory
	result := r.db.WithContext(ctx).Order("name ASC").Find(&categories)

	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// GetSubtree получает категорию и всех её потомков одним LIKE запросом по пути
func (r *categoryRepository) GetSubtree(ctx context.Context, id uint) ([]entity.ProductCategory, error) {
	root, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var categories []entity.ProductCategory
	result := r.db.WithContext(ctx).
		Where("path = ? OR path LIKE ?", root.Path, root.Path+"%").
		Order("path ASC, name ASC").
		Find(&categories)

	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// Update обновляет категорию; при смене родителя проверяет отсутствие цикла
// и переписывает пути всего поддерева
func (r *categoryRepository) Update(ctx context.Context, category *entity.ProductCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.ProductCategory
		if err := tx.First(&current, "id = ?", category.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		newPath := fmt.Sprintf("/%d/", category.ID)
		if category.ParentID != nil {
			if *category.ParentID == category.ID {
				return ErrCategoryCycle
			}
			var parent entity.ProductCategory
			if err := tx.First(&parent, "id = ?", *category.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCategoryNotFound
				}
				return err
			}
			// Родитель не может лежать внутри собственного поддерева
			if strings.HasPrefix(parent.Path, current.Path) {
				return ErrCategoryCycle
			}
			newPath = fmt.Sprintf("%s%d/", parent.Path, category.ID)
		}

		updates := map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"parent_id":   category.ParentID,
			"path":        newPath,
		}
		if err := tx.Model(&entity.ProductCategory{}).Where("id = ?", category.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}

		// Переписываем пути потомков при переносе узла
		if newPath != current.Path {
			var descendants []entity.ProductCategory
			if err := tx.Where("path LIKE ? AND id <> ?", current.Path+"%", category.ID).Find(&descendants).Error; err != nil {
				return err
			}
			for _, d := range descendants {
				rewritten := newPath + strings.TrimPrefix(d.Path, current.Path)
				if err := tx.Model(&entity.ProductCategory{}).Where("id = ?", d.ID).
					UpdateColumn("path", rewritten).Error; err != nil {
					return err
				}
			}
		}

		category.Path = newPath
		return nil
	})
}

// Delete удаляет категорию; удаление блокируется пока на категорию
// (или её потомков) ссылаются товары
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category entity.ProductCategory
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var productCount int64
		subtree := tx.Model(&entity.ProductCategory{}).Select("id").
			Where("path = ? OR path LIKE ?", category.Path, category.Path+"%")
		if err := tx.Model(&entity.Product{}).Where("category_id IN (?)", subtree).
			Count(&productCount).Error; err != nil {
			return fmt.Errorf("failed to check products in category: %w", err)
		}
		if productCount > 0 {
			return ErrCategoryHasProducts
		}

		// Потомки удаляются вместе с узлом
		result := tx.Where("path = ? OR path LIKE ?", category.Path, category.Path+"%").
			Delete(&entity.ProductCategory{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}

		return nil
	})
}
