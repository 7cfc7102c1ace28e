package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
	"widgetfactory/internal/app/store/util"
	"widgetfactory/pkg/logger"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrCategoryNotFound      = errors.New("product category not found")
	ErrCategoryHasProducts   = errors.New("category still referenced by products")
	ErrCategoryCycle         = errors.New("category parent would create a cycle")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductHasSKUs        = errors.New("product still referenced by skus")
	ErrAttributeTypeNotFound = errors.New("attribute type not found")
	ErrAttributeTypeInUse    = errors.New("attribute type still referenced by attributes")
	ErrAttributeNotFound     = errors.New("attribute not found")
	ErrSKUNotFound           = errors.New("sku not found")
)

const categoriesCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога:
// категории, товары, типы атрибутов, атрибуты и SKU
type CatalogService struct {
	categoryRepo      repository.CategoryRepository
	productRepo       repository.ProductRepository
	attributeTypeRepo repository.AttributeTypeRepository
	attributeRepo     repository.AttributeRepository
	skuRepo           repository.SKURepository
	cache             util.CategoryCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	attributeTypeRepo repository.AttributeTypeRepository,
	attributeRepo repository.AttributeRepository,
	skuRepo repository.SKURepository,
	cache util.CategoryCache,
) *CatalogService {
	return &CatalogService{
		categoryRepo:      categoryRepo,
		productRepo:       productRepo,
		attributeTypeRepo: attributeTypeRepo,
		attributeRepo:     attributeRepo,
		skuRepo:           skuRepo,
		cache:             cache,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.ProductCategory, error) {
	category := &entity.ProductCategory{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// GetCategory получает категорию по ID с дочерними категориями
func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*entity.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, categoriesCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *entity.UpdateCategoryRequest) (*entity.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ParentID != nil {
		category.ParentID = req.ParentID
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryCycle):
			return nil, ErrCategoryCycle
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryHasProducts):
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoriesCache(ctx)

	return nil
}

func (s *CatalogService) invalidateCategoriesCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}

// === PRODUCTS ===

// CreateProduct создает новый товар
// Проверяет существование категории перед созданием
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to verify category: %w", err)
	}

	product := &entity.Product{
		Name:         req.Name,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
		CategoryID:   req.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProduct получает товар по ID с информацией о категории
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts получает товары по имени, с опциональным фильтром по ID
func (s *CatalogService) ListProducts(ctx context.Context, id *uint) ([]entity.Product, error) {
	products, err := s.productRepo.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет переданные поля товара
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Manufacturer != nil {
		product.Manufacturer = *req.Manufacturer
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		product.CategoryID = *req.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product.Category = nil
	return s.GetProduct(ctx, id)
}

// DeleteProduct удаляет товар
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return ErrProductNotFound
		case errors.Is(err, repository.ErrProductHasSKUs):
			return ErrProductHasSKUs
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// === ATTRIBUTE TYPES ===

// CreateAttributeType создает новый тип атрибута
func (s *CatalogService) CreateAttributeType(ctx context.Context, req *entity.CreateAttributeTypeRequest) (*entity.AttributeType, error) {
	attributeType := &entity.AttributeType{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.attributeTypeRepo.Create(ctx, attributeType); err != nil {
		return nil, fmt.Errorf("failed to create attribute type: %w", err)
	}

	return attributeType, nil
}

// GetAttributeType получает тип атрибута с вложенными атрибутами
func (s *CatalogService) GetAttributeType(ctx context.Context, id uint) (*entity.AttributeType, error) {
	attributeType, err := s.attributeTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttributeTypeNotFound) {
			return nil, ErrAttributeTypeNotFound
		}
		return nil, fmt.Errorf("failed to get attribute type: %w", err)
	}

	return attributeType, nil
}

// ListAttributeTypes получает типы атрибутов с вложенными атрибутами и SKU
func (s *CatalogService) ListAttributeTypes(ctx context.Context, productID *uint) ([]entity.AttributeType, error) {
	attributeTypes, err := s.attributeTypeRepo.List(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute types: %w", err)
	}

	return attributeTypes, nil
}

// UpdateAttributeType обновляет переданные поля типа атрибута
func (s *CatalogService) UpdateAttributeType(ctx context.Context, id uint, req *entity.UpdateAttributeTypeRequest) (*entity.AttributeType, error) {
	attributeType, err := s.attributeTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttributeTypeNotFound) {
			return nil, ErrAttributeTypeNotFound
		}
		return nil, fmt.Errorf("failed to get attribute type: %w", err)
	}

	if req.Name != nil {
		attributeType.Name = *req.Name
	}
	if req.Description != nil {
		attributeType.Description = *req.Description
	}

	if err := s.attributeTypeRepo.Update(ctx, attributeType); err != nil {
		return nil, fmt.Errorf("failed to update attribute type: %w", err)
	}

	return attributeType, nil
}

// DeleteAttributeType удаляет тип атрибута
func (s *CatalogService) DeleteAttributeType(ctx context.Context, id uint) error {
	if err := s.attributeTypeRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrAttributeTypeNotFound):
			return ErrAttributeTypeNotFound
		case errors.Is(err, repository.ErrAttributeTypeInUse):
			return ErrAttributeTypeInUse
		}
		return fmt.Errorf("failed to delete attribute type: %w", err)
	}

	return nil
}

// === ATTRIBUTES ===

// CreateAttribute создает новый атрибут
// Проверяет существование типа атрибута перед созданием
func (s *CatalogService) CreateAttribute(ctx context.Context, req *entity.CreateAttributeRequest) (*entity.Attribute, error) {
	if _, err := s.attributeTypeRepo.GetByID(ctx, req.TypeID); err != nil {
		if errors.Is(err, repository.ErrAttributeTypeNotFound) {
			return nil, ErrAttributeTypeNotFound
		}
		return nil, fmt.Errorf("failed to verify attribute type: %w", err)
	}

	attribute := &entity.Attribute{
		Name:        req.Name,
		Description: req.Description,
		TypeID:      req.TypeID,
	}

	if err := s.attributeRepo.Create(ctx, attribute); err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}

	return s.GetAttribute(ctx, attribute.ID)
}

// GetAttribute получает атрибут с его типом
func (s *CatalogService) GetAttribute(ctx context.Context, id uint) (*entity.Attribute, error) {
	attribute, err := s.attributeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttributeNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}

	return attribute, nil
}

// ListAttributes получает атрибуты по имени с фильтрами по типу и товару
func (s *CatalogService) ListAttributes(ctx context.Context, filter repository.AttributeFilter) ([]entity.Attribute, error) {
	attributes, err := s.attributeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}

	return attributes, nil
}

// UpdateAttribute обновляет переданные поля атрибута
func (s *CatalogService) UpdateAttribute(ctx context.Context, id uint, req *entity.UpdateAttributeRequest) (*entity.Attribute, error) {
	attribute, err := s.attributeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAttributeNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}

	if req.Name != nil {
		attribute.Name = *req.Name
	}
	if req.Description != nil {
		attribute.Description = *req.Description
	}
	if req.TypeID != nil {
		if _, err := s.attributeTypeRepo.GetByID(ctx, *req.TypeID); err != nil {
			if errors.Is(err, repository.ErrAttributeTypeNotFound) {
				return nil, ErrAttributeTypeNotFound
			}
			return nil, fmt.Errorf("failed to verify attribute type: %w", err)
		}
		attribute.TypeID = *req.TypeID
	}

	if err := s.attributeRepo.Update(ctx, attribute); err != nil {
		return nil, fmt.Errorf("failed to update attribute: %w", err)
	}

	return s.GetAttribute(ctx, id)
}

// DeleteAttribute удаляет атрибут
func (s *CatalogService) DeleteAttribute(ctx context.Context, id uint) error {
	if err := s.attributeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAttributeNotFound) {
			return ErrAttributeNotFound
		}
		return fmt.Errorf("failed to delete attribute: %w", err)
	}

	return nil
}

// === SKU ===

// CreateSKU создает новый SKU с набором атрибутов
// Проверяет существование товара и каждого атрибута перед созданием
func (s *CatalogService) CreateSKU(ctx context.Context, req *entity.CreateSKURequest) (*entity.SKU, error) {
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	attributes, err := s.attributeRepo.GetByIDs(ctx, req.AttributeIDs)
	if err != nil {
		if errors.Is(err, repository.ErrAttributeNotFound) {
			return nil, ErrAttributeNotFound
		}
		return nil, fmt.Errorf("failed to verify attributes: %w", err)
	}

	sku := &entity.SKU{
		Number:     req.Number,
		ProductID:  req.ProductID,
		Price:      req.Price,
		Currency:   req.Currency,
		Quantity:   req.Quantity,
		Attributes: attributes,
	}

	if err := s.skuRepo.Create(ctx, sku); err != nil {
		return nil, fmt.Errorf("failed to create sku: %w", err)
	}

	return s.GetSKU(ctx, sku.ID)
}

// GetSKU получает SKU с товаром и атрибутами
func (s *CatalogService) GetSKU(ctx context.Context, id uint) (*entity.SKU, error) {
	sku, err := s.skuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}

	return sku, nil
}

// ListSKUs получает SKU по артикулу с фильтрами и полнотекстовым поиском
// по именам атрибутов
func (s *CatalogService) ListSKUs(ctx context.Context, filter entity.SKUListFilter) ([]entity.SKU, error) {
	skus, err := s.skuRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}

	return skus, nil
}

// UpdateSKU обновляет переданные поля SKU, включая набор атрибутов
func (s *CatalogService) UpdateSKU(ctx context.Context, id uint, req *entity.UpdateSKURequest) (*entity.SKU, error) {
	sku, err := s.skuRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			return nil, ErrSKUNotFound
		}
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}

	if req.Number != nil {
		sku.Number = *req.Number
	}
	if req.ProductID != nil {
		if _, err := s.productRepo.GetByID(ctx, *req.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to verify product: %w", err)
		}
		sku.ProductID = *req.ProductID
	}
	if req.Price != nil {
		sku.Price = *req.Price
	}
	if req.Currency != nil {
		sku.Currency = *req.Currency
	}
	if req.Quantity != nil {
		sku.Quantity = *req.Quantity
	}

	if err := s.skuRepo.Update(ctx, sku); err != nil {
		return nil, fmt.Errorf("failed to update sku: %w", err)
	}

	if req.AttributeIDs != nil {
		attributes, err := s.attributeRepo.GetByIDs(ctx, *req.AttributeIDs)
		if err != nil {
			if errors.Is(err, repository.ErrAttributeNotFound) {
				return nil, ErrAttributeNotFound
			}
			return nil, fmt.Errorf("failed to verify attributes: %w", err)
		}
		if err := s.skuRepo.ReplaceAttributes(ctx, sku, attributes); err != nil {
			return nil, fmt.Errorf("failed to replace sku attributes: %w", err)
		}
	}

	return s.GetSKU(ctx, id)
}

// DeleteSKU удаляет SKU
func (s *CatalogService) DeleteSKU(ctx context.Context, id uint) error {
	if err := s.skuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			return ErrSKUNotFound
		}
		return fmt.Errorf("failed to delete sku: %w", err)
	}

	return nil
}
