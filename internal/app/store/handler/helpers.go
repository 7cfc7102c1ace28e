package handler

import (
	"net/http"
	"strconv"
	"strings"

	"widgetfactory/internal/app/store/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// parseIDParam извлекает числовой ID из path-параметра
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parseUintQuery извлекает опциональный числовой query-параметр
// Возвращает nil, если параметр отсутствует
func parseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error:  "Invalid query parameter",
			Fields: map[string]string{name: "must be an integer"},
		})
		return nil, false
	}
	v := uint(value)
	return &v, true
}

// parseUintListQuery извлекает список ID из query-параметра вида ?attributes=1,2
func parseUintListQuery(c *gin.Context, name string) ([]uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{
				Error:  "Invalid query parameter",
				Fields: map[string]string{name: "must be a comma-separated list of integers"},
			})
			return nil, false
		}
		ids = append(ids, uint(value))
	}
	return ids, true
}

// respondValidationError отдает 400 с картой ошибок по полям
// Ключ - полный путь поля внутри payload, например "Contact.Email"
func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	fields := make(map[string]string)

	if ve, ok := err.(validator.ValidationErrors); ok {
		validationErrors = ve
	}
	for _, fieldError := range validationErrors {
		// Namespace начинается с имени типа запроса, отрезаем его
		key := fieldError.Namespace()
		if idx := strings.Index(key, "."); idx >= 0 {
			key = key[idx+1:]
		}
		fields[key] = fieldError.Field() + " is " + fieldError.Tag()
	}

	c.JSON(http.StatusBadRequest, entity.ErrorResponse{
		Error:  "Validation failed",
		Fields: fields,
	})
}
