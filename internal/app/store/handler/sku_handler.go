package handler

import (
	"errors"
	"net/http"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SKUHandler обрабатывает HTTP запросы для единиц складского учета
type SKUHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewSKUHandler создает новый обработчик SKU
func NewSKUHandler(catalogService service.CatalogServiceInterface) *SKUHandler {
	return &SKUHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// CreateSKU обрабатывает POST /api/skus/
func (h *SKUHandler) CreateSKU(c *gin.Context) {
	var req entity.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	sku, err := h.catalogService.CreateSKU(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"ProductID": "product not found"},
			})
		case errors.Is(err, service.ErrAttributeNotFound):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"AttributeIDs": "one or more attributes not found"},
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to create sku"})
		}
		return
	}

	c.JSON(http.StatusCreated, sku)
}

// GetSKU обрабатывает GET /api/skus/:id
func (h *SKUHandler) GetSKU(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sku, err := h.catalogService.GetSKU(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSKUNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "SKU not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to get sku"})
		return
	}

	c.JSON(http.StatusOK, sku)
}

// ListSKUs обрабатывает GET /api/skus/
// Поддерживает ?attributes=1,2 (пересечение), ?product_id= и ?search=
// по именам атрибутов
func (h *SKUHandler) ListSKUs(c *gin.Context) {
	attributeIDs, ok := parseUintListQuery(c, "attributes")
	if !ok {
		return
	}
	productID, ok := parseUintQuery(c, "product_id")
	if !ok {
		return
	}

	skus, err := h.catalogService.ListSKUs(c.Request.Context(), entity.SKUListFilter{
		AttributeIDs: attributeIDs,
		ProductID:    productID,
		Search:       c.Query("search"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to list skus"})
		return
	}

	c.JSON(http.StatusOK, entity.SKUListResponse{
		SKUs:  skus,
		Total: len(skus),
	})
}

// ReplaceSKU обрабатывает PUT /api/skus/:id
func (h *SKUHandler) ReplaceSKU(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	update := entity.UpdateSKURequest{
		Number:       &req.Number,
		ProductID:    &req.ProductID,
		Price:        &req.Price,
		Currency:     &req.Currency,
		Quantity:     &req.Quantity,
		AttributeIDs: &req.AttributeIDs,
	}
	h.updateSKU(c, id, &update)
}

// UpdateSKU обрабатывает PATCH /api/skus/:id
func (h *SKUHandler) UpdateSKU(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.UpdateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.updateSKU(c, id, &req)
}

func (h *SKUHandler) updateSKU(c *gin.Context, id uint, req *entity.UpdateSKURequest) {
	sku, err := h.catalogService.UpdateSKU(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSKUNotFound):
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "SKU not found"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"ProductID": "product not found"},
			})
		case errors.Is(err, service.ErrAttributeNotFound):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Validation failed",
				Fields: map[string]string{"AttributeIDs": "one or more attributes not found"},
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to update sku"})
		}
		return
	}

	c.JSON(http.StatusOK, sku)
}

// DeleteSKU обрабатывает DELETE /api/skus/:id
func (h *SKUHandler) DeleteSKU(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteSKU(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSKUNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "SKU not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to delete sku"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "SKU deleted successfully"})
}
