package entity

import "github.com/shopspring/decimal"

// === CATEGORIES ===

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=256"`
	ParentID    *uint  `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=256"`
	ParentID    *uint   `json:"parent_id"`
}

// === PRODUCTS ===

type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	Description  string `json:"description" validate:"max=256"`
	Manufacturer string `json:"manufacturer" validate:"required,min=1,max=50"`
	CategoryID   uint   `json:"category_id" validate:"required"`
}

type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description  *string `json:"description" validate:"omitempty,max=256"`
	Manufacturer *string `json:"manufacturer" validate:"omitempty,min=1,max=50"`
	CategoryID   *uint   `json:"category_id"`
}

// === ATTRIBUTE TYPES ===

type CreateAttributeTypeRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=256"`
}

type UpdateAttributeTypeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=256"`
}

// === ATTRIBUTES ===

type CreateAttributeRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=256"`
	TypeID      uint   `json:"type_id" validate:"required"`
}

type UpdateAttributeRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=256"`
	TypeID      *uint   `json:"type_id"`
}

// === SKU ===

type CreateSKURequest struct {
	Number       string          `json:"number" validate:"required,min=1,max=40"`
	ProductID    uint            `json:"product_id" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Currency     Currency        `json:"currency" validate:"required,oneof=BTC"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	AttributeIDs []uint          `json:"attributes"`
}

type UpdateSKURequest struct {
	Number       *string          `json:"number" validate:"omitempty,min=1,max=40"`
	ProductID    *uint            `json:"product_id"`
	Price        *decimal.Decimal `json:"price"`
	Currency     *Currency        `json:"currency" validate:"omitempty,oneof=BTC"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	AttributeIDs *[]uint          `json:"attributes"`
}

// SKUListFilter параметры фильтрации списка SKU из query string
// AttributeIDs применяются последовательно как пересечение (AND), не объединение
type SKUListFilter struct {
	AttributeIDs []uint
	ProductID    *uint
	Search       string
}

// === ORDERS ===

// OrderAddressRequest вложенная секция адреса в платеже создания заказа
type OrderAddressRequest struct {
	Country      string `json:"country" validate:"required,max=5"`
	Street       string `json:"street" validate:"required,max=50"`
	City         string `json:"city" validate:"required,max=40"`
	PostalCode   string `json:"postal_code" validate:"max=20"`
	State        string `json:"state" validate:"max=50"`
	Department   string `json:"department" validate:"max=50"`
	District     string `json:"district" validate:"max=50"`
	Prefecture   string `json:"prefecture" validate:"max=50"`
	Province     string `json:"province" validate:"max=50"`
	Region       string `json:"region" validate:"max=50"`
	Municipality string `json:"municipality" validate:"max=50"`
	County       string `json:"county" validate:"max=50"`
	Nation       string `json:"nation" validate:"max=50"`
	Phone        string `json:"phone" validate:"max=30"`
	MobilePhone  string `json:"mobile_phone" validate:"max=30"`
}

// OrderContactRequest вложенная секция контакта
type OrderContactRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// OrderLineRequest одна позиция заказа
type OrderLineRequest struct {
	SKU      uint            `json:"sku" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Currency Currency        `json:"currency" validate:"required,oneof=BTC"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Ordering int             `json:"ordering" validate:"gte=0"`
}

// CreateOrderRequest полный вложенный payload создания заказа (§ заказы)
// Все четыре секции обязательны, список позиций непустой
type CreateOrderRequest struct {
	BillTo       OrderAddressRequest `json:"bill_to"`
	ShipTo       OrderAddressRequest `json:"ship_to"`
	Contact      OrderContactRequest `json:"contact"`
	OrderLineSet []OrderLineRequest  `json:"order_line_set" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending_payment failed processing completed on_hold cancelled refunded"`
}

// === RESPONSES ===

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"` // ошибки валидации по полям
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CategoryListResponse struct {
	Categories []ProductCategory `json:"categories"`
	Total      int               `json:"total"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type AttributeTypeListResponse struct {
	AttributeTypes []AttributeType `json:"attribute_types"`
	Total          int             `json:"total"`
}

type AttributeListResponse struct {
	Attributes []Attribute `json:"attributes"`
	Total      int         `json:"total"`
}

type SKUListResponse struct {
	SKUs  []SKU `json:"skus"`
	Total int   `json:"total"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
