package handler

import (
	"errors"
	"net/http"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
	"widgetfactory/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AttributeHandler обрабатывает HTTP запросы для типов атрибутов и атрибутов
type AttributeHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewAttributeHandler создает новый обработчик атрибутов
func NewAttributeHandler(catalogService service.CatalogServiceInterface) *AttributeHandler {
	return &AttributeHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === ATTRIBUTE TYPES ===

// CreateAttributeType обрабатывает POST /api/product_attribute_types/
func (h *AttributeHandler) CreateAttributeType(c *gin.Context) {
	var req entity.CreateAttributeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	attributeType, err := h.catalogService.CreateAttributeType(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create attribute type"})
		return
	}

	c.JSON(http.StatusCreated, attributeType)
}

// GetAttributeType обрабатывает GET /api/product_attribute_types/:id
func (h *AttributeHandler) GetAttributeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	attributeType, err := h.catalogService.GetAttributeType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAttributeTypeNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get attribute type"})
		return
	}

	c.JSON(http.StatusOK, attributeType)
}

// ListAttributeTypes обрабатывает GET /api/product_attribute_types/
// Поддерживает фильтр ?sku_set__product_id= (типы, используемые SKU товара)
func (h *AttributeHandler) ListAttributeTypes(c *gin.Context) {
	productID, ok := parseUintQuery(c, "sku_set__product_id")
	if !ok {
		return
	}

	attributeTypes, err := h.catalogService.ListAttributeTypes(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to list attribute types"})
		return
	}

	c.JSON(http.StatusOK, entity.AttributeTypeListResponse{
		AttributeTypes: attributeTypes,
		Total:          len(attributeTypes),
	})
}

// ReplaceAttributeType обрабатывает PUT /api/product_attribute_types/:id
func (h *AttributeHandler) ReplaceAttributeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CreateAttributeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	update := entity.UpdateAttributeTypeRequest{
		Name:        &req.Name,
		Description: &req.Description,
	}
	h.updateAttributeType(c, id, &update)
}

// UpdateAttributeType обрабатывает PATCH /api/product_attribute_types/:id
func (h *AttributeHandler) UpdateAttributeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateAttributeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.updateAttributeType(c, id, &req)
}

func (h *AttributeHandler) updateAttributeType(c *gin.Context, id uint, req *entity.UpdateAttributeTypeRequest) {
	attributeType, err := h.catalogService.UpdateAttributeType(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrAttributeTypeNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to update attribute type"})
		return
	}

	c.JSON(http.StatusOK, attributeType)
}

// DeleteAttributeType обрабатывает DELETE /api/product_attribute_types/:id
func (h *AttributeHandler) DeleteAttributeType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteAttributeType(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrAttributeTypeNotFound):
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute type not found"})
		case errors.Is(err, service.ErrAttributeTypeInUse):
			c.JSON(http.StatusConflict, entity.ErrorResponse{Error: "Attribute type is referenced by attributes"})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to delete attribute type"})
		}
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Attribute type deleted successfully"})
}

// === ATTRIBUTES ===

// CreateAttribute обрабатывает POST /api/product_attributes/
func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var req entity.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	attribute, err := h.catalogService.CreateAttribute(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAttributeTypeNotFound) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"TypeID": "attribute type not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create attribute"})
		return
	}

	c.JSON(http.StatusCreated, attribute)
}

// GetAttribute обрабатывает GET /api/product_attributes/:id
func (h *AttributeHandler) GetAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	attribute, err := h.catalogService.GetAttribute(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAttributeNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get attribute"})
		return
	}

	c.JSON(http.StatusOK, attribute)
}

// ListAttributes обрабатывает GET /api/product_attributes/
// Поддерживает фильтры ?type__id= и ?sku_set__product_id=
func (h *AttributeHandler) ListAttributes(c *gin.Context) {
	typeID, ok := parseUintQuery(c, "type__id")
	if !ok {
		return
	}
	productID, ok := parseUintQuery(c, "sku_set__product_id")
	if !ok {
		return
	}

	attributes, err := h.catalogService.ListAttributes(c.Request.Context(), repository.AttributeFilter{
		TypeID:    typeID,
		ProductID: productID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to list attributes"})
		return
	}

	c.JSON(http.StatusOK, entity.AttributeListResponse{
		Attributes: attributes,
		Total:      len(attributes),
	})
}

// ReplaceAttribute обрабатывает PUT /api/product_attributes/:id
func (h *AttributeHandler) ReplaceAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	update := entity.UpdateAttributeRequest{
		Name:        &req.Name,
		Description: &req.Description,
		TypeID:      &req.TypeID,
	}
	h.updateAttribute(c, id, &update)
}

// UpdateAttribute обрабатывает PATCH /api/product_attributes/:id
func (h *AttributeHandler) UpdateAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.updateAttribute(c, id, &req)
}

func (h *AttributeHandler) updateAttribute(c *gin.Context, id uint, req *entity.UpdateAttributeRequest) {
	attribute, err := h.catalogService.UpdateAttribute(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttributeNotFound):
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute not found"})
		case errors.Is(err, service.ErrAttributeTypeNotFound):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"TypeID": "attribute type not found"},
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to update attribute"})
		}
		return
	}

	c.JSON(http.StatusOK, attribute)
}

// DeleteAttribute обрабатывает DELETE /api/product_attributes/:id
func (h *AttributeHandler) DeleteAttribute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteAttribute(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAttributeNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Attribute not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to delete attribute"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Attribute deleted successfully"})
}
