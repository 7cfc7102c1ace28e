package repository

import (
	"context"
	"errors"
	"fmt"

	"widgetfactory/internal/app/store/entity"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// orderLinesByOrdering сортирует позиции заказа по переданному клиентом индексу
func orderLinesByOrdering(db *gorm.DB) *gorm.DB {
	return db.Order("order_lines.ordering ASC")
}

// Create выполняет транзакцию создания заказа (единственный путь записи,
// меняющий остатки SKU):
//  1. вставка платёжного адреса, адреса доставки и контакта - всегда новые строки
//  2. вставка заказа и его позиций с сохранением клиентского индекса ordering
//  3. атомарное списание остатка каждого SKU одним UPDATE выражением,
//     что сериализует конкурентные списания на стороне СУБД
//
// Любая ошибка откатывает все записи; частичное состояние снаружи не видно.
// Ссылка на несуществующий SKU обнаруживается по RowsAffected == 0
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range order.OrderLines {
			result := tx.Model(&entity.SKU{}).
				Where("id = ?", line.SKUID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", line.Quantity))

			if result.Error != nil {
				return fmt.Errorf("failed to decrement sku stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrSKUNotFound
			}
		}

		return nil
	})
}

// GetByID получает заказ с адресами, контактом и позициями в порядке ordering
func (r *orderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	result := r.db.WithContext(ctx).
		Preload("BillTo").
		Preload("ShipTo").
		Preload("Contact").
		Preload("OrderLines", orderLinesByOrdering).
		First(&order, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}

	return &order, nil
}

// GetAll получает все заказы, самые свежие первыми
func (r *orderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	result := r.db.WithContext(ctx).
		Preload("BillTo").
		Preload("ShipTo").
		Preload("Contact").
		Preload("OrderLines", orderLinesByOrdering).
		Order("created_at DESC").
		Find(&orders)

	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

// UpdateStatus меняет статус заказа - единственная мутация после создания
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// CountByStatus считает заказы в разрезе статусов (для фонового мониторинга)
func (r *orderRepository) CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	type statusCount struct {
		Status entity.OrderStatus
		Count  int64
	}

	var rows []statusCount
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
