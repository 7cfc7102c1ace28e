package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency представляет валюту цены
// Магазин принимает оплату только в BitCoin
type Currency string

const (
	CurrencyBTC Currency = "BTC"
)

// ProductCategory представляет категорию товаров
// Иерархия хранится через ссылку на родителя и материализованный путь (Path),
// что позволяет выбирать поддеревья одним LIKE запросом без рекурсии
type ProductCategory struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	ParentID    *uint             `json:"parent_id" gorm:"index"`
	Name        string            `json:"name" gorm:"size:50;not null"`
	Description string            `json:"description" gorm:"size:256"`
	Path        string            `json:"-" gorm:"size:255;index"` // формат: /1/4/9/
	Children    []ProductCategory `json:"children,omitempty" gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (ProductCategory) TableName() string {
	return "product_categories"
}

// Product представляет товар в каталоге
type Product struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Name         string           `json:"name" gorm:"size:50;not null"`
	Description  string           `json:"description" gorm:"size:256"`
	Manufacturer string           `json:"manufacturer" gorm:"size:50;not null"`
	CategoryID   uint             `json:"category_id" gorm:"not null;index"`
	Category     *ProductCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// AttributeType представляет группу характеристик товара (например "Size")
type AttributeType struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"size:50;not null"`
	Description string      `json:"description" gorm:"size:256"`
	Attributes  []Attribute `json:"attribute_set,omitempty" gorm:"foreignKey:TypeID"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (AttributeType) TableName() string {
	return "attribute_types"
}

// Attribute представляет конкретную характеристику (например "Red" внутри "Finish")
type Attribute struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TypeID      uint           `json:"type_id" gorm:"not null;index"`
	Type        *AttributeType `json:"type,omitempty" gorm:"foreignKey:TypeID"`
	Name        string         `json:"name" gorm:"size:50;not null"`
	Description string         `json:"description" gorm:"size:256"`
	SKUs        []SKU          `json:"sku_set,omitempty" gorm:"many2many:sku_attributes;joinReferences:sku_id"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Attribute) TableName() string {
	return "attributes"
}

// SKU представляет конкретный покупаемый вариант товара
// со своей ценой, остатком и набором характеристик
type SKU struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Number     string          `json:"number" gorm:"size:40;not null;index"` // внешний артикул
	ProductID  uint            `json:"product_id" gorm:"not null;index"`
	Product    *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(16,8);not null"` // 8 знаков после запятой
	Currency   Currency        `json:"currency" gorm:"size:3;not null"`
	Quantity   int             `json:"quantity" gorm:"not null"` // остаток на складе
	Attributes []Attribute     `json:"attributes,omitempty" gorm:"many2many:sku_attributes;joinForeignKey:sku_id"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (SKU) TableName() string {
	return "skus"
}

// Address представляет почтовый адрес (платёжный или для доставки)
// Региональные поля опциональны и зависят от страны
type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Country     string    `json:"country" gorm:"size:5;not null"`
	Street      string    `json:"street" gorm:"size:50;not null"`
	City        string    `json:"city" gorm:"size:40;not null"`
	PostalCode  string    `json:"postal_code" gorm:"size:20"`
	State       string    `json:"state" gorm:"size:50"`
	Department  string    `json:"department" gorm:"size:50"`
	District    string    `json:"district" gorm:"size:50"`
	Prefecture  string    `json:"prefecture" gorm:"size:50"`
	Province    string    `json:"province" gorm:"size:50"`
	Region      string    `json:"region" gorm:"size:50"`
	Municipality string   `json:"municipality" gorm:"size:50"`
	County      string    `json:"county" gorm:"size:50"`
	Nation      string    `json:"nation" gorm:"size:50"`
	Phone       string    `json:"phone" gorm:"size:30"`
	MobilePhone string    `json:"mobile_phone" gorm:"size:30"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Address) TableName() string {
	return "addresses"
}

// Contact представляет контактное лицо заказа
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"size:150;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Contact) TableName() string {
	return "contacts"
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment" // Ожидает оплаты
	OrderStatusFailed         OrderStatus = "failed"          // Оплата не прошла
	OrderStatusProcessing     OrderStatus = "processing"      // В обработке (статус по умолчанию)
	OrderStatusCompleted      OrderStatus = "completed"       // Завершён
	OrderStatusOnHold         OrderStatus = "on_hold"         // Приостановлен
	OrderStatusCancelled      OrderStatus = "cancelled"       // Отменён
	OrderStatusRefunded       OrderStatus = "refunded"        // Возврат средств
)

// AllOrderStatuses полный перечень статусов для обхода в метриках
var AllOrderStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusFailed,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusOnHold,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// Order представляет заказ: платёжный адрес, адрес доставки,
// контакт и упорядоченный набор позиций
type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Status     OrderStatus `json:"status" gorm:"size:50;not null;default:'processing'"`
	BillToID   uint        `json:"-" gorm:"not null"`
	BillTo     Address     `json:"bill_to" gorm:"foreignKey:BillToID"`
	ShipToID   uint        `json:"-" gorm:"not null"`
	ShipTo     Address     `json:"ship_to" gorm:"foreignKey:ShipToID"`
	ContactID  uint        `json:"-" gorm:"not null"`
	Contact    Contact     `json:"contact" gorm:"foreignKey:ContactID"`
	OrderLines []OrderLine `json:"order_line_set" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time   `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderLine представляет позицию заказа
// Цена и валюта фиксируются на момент покупки и не следуют
// за последующими изменениями цены SKU
type OrderLine struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	SKUID     uint            `json:"sku" gorm:"column:sku_id;not null;index"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(16,8);not null"`
	Currency  Currency        `json:"currency" gorm:"size:3;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Ordering  int             `json:"ordering" gorm:"column:ordering;not null"` // позиция внутри заказа
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"modified_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы для GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderEvent представляет событие о заказе для Kafka
type OrderEvent struct {
	EventType string      `json:"event_type"` // ORDER_CREATED, ORDER_STATUS_CHANGED
	OrderID   uint        `json:"order_id"`
	Status    OrderStatus `json:"status"`
	LineCount int         `json:"line_count"`
	Timestamp time.Time   `json:"timestamp"`
}
