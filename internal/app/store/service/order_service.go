package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
	"widgetfactory/internal/app/store/util"
	"widgetfactory/pkg/logger"
	"widgetfactory/pkg/metrics"
)

var (
	// Ошибки бизнес-логики заказов для обработки в handlers
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderSKUNotFound = errors.New("order line references unknown sku")
)

// OrderService обрабатывает бизнес-логику заказов
// Координирует репозиторий заказов, проверку SKU и отправку событий в Kafka
type OrderService struct {
	orderRepo repository.OrderRepository
	skuRepo   repository.SKURepository
	producer  util.MessagePublisher
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	orderRepo repository.OrderRepository,
	skuRepo repository.SKURepository,
	producer util.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		skuRepo:   skuRepo,
		producer:  producer,
	}
}

// CreateOrder создает новый заказ из вложенного payload:
//  1. Проверяет существование каждого SKU до какой-либо записи
//  2. Собирает адреса, контакт, заказ и позиции (порядок клиента сохраняется)
//  3. Выполняет атомарную транзакцию репозитория: вставки + списание остатков
//  4. Отправляет событие ORDER_CREATED в Kafka
//
// Адрес и контакт всегда вставляются новыми строками, дедупликации нет.
// Достаточность остатка не проверяется: остаток может уйти в минус
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	for _, line := range req.OrderLineSet {
		if _, err := s.skuRepo.GetByID(ctx, line.SKU); err != nil {
			if errors.Is(err, repository.ErrSKUNotFound) {
				return nil, ErrOrderSKUNotFound
			}
			return nil, fmt.Errorf("failed to verify sku: %w", err)
		}
	}

	order := &entity.Order{
		Status:  entity.OrderStatusProcessing,
		BillTo:  addressFromRequest(req.BillTo),
		ShipTo:  addressFromRequest(req.ShipTo),
		Contact: entity.Contact{FullName: req.Contact.FullName, Email: req.Contact.Email},
	}

	orderLines := make([]entity.OrderLine, 0, len(req.OrderLineSet))
	for _, lineReq := range req.OrderLineSet {
		orderLines = append(orderLines, entity.OrderLine{
			SKUID:    lineReq.SKU,
			Price:    lineReq.Price, // цена фиксируется на момент покупки
			Currency: lineReq.Currency,
			Quantity: lineReq.Quantity,
			Ordering: lineReq.Ordering,
		})
	}
	order.OrderLines = orderLines

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrSKUNotFound) {
			return nil, ErrOrderSKUNotFound
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderLinesCreated.Add(float64(len(orderLines)))
	metrics.SKUStockAdjustments.Add(float64(len(orderLines)))

	event := entity.OrderEvent{
		EventType: "ORDER_CREATED",
		OrderID:   order.ID,
		Status:    order.Status,
		LineCount: len(orderLines),
		Timestamp: time.Now(),
	}
	if err := s.publishOrderEvent(ctx, event); err != nil {
		// Заказ уже создан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order created event")
	}

	return s.GetOrder(ctx, order.ID)
}

// GetOrder получает заказ по ID со всеми вложенными данными
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// ListOrders получает все заказы, самые свежие первыми
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus меняет статус заказа и отправляет событие в Kafka
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error) {
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	event := entity.OrderEvent{
		EventType: "ORDER_STATUS_CHANGED",
		OrderID:   order.ID,
		Status:    order.Status,
		LineCount: len(order.OrderLines),
		Timestamp: time.Now(),
	}
	if err := s.publishOrderEvent(ctx, event); err != nil {
		logger.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to publish order status event")
	}

	return order, nil
}

// publishOrderEvent отправляет событие о заказе в Kafka
// Key - это ID заказа для партиционирования
func (s *OrderService) publishOrderEvent(ctx context.Context, event entity.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if err := s.producer.PublishMessage(ctx, strconv.FormatUint(uint64(event.OrderID), 10), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}

// addressFromRequest собирает сущность адреса из вложенной секции payload
func addressFromRequest(req entity.OrderAddressRequest) entity.Address {
	return entity.Address{
		Country:      req.Country,
		Street:       req.Street,
		City:         req.City,
		PostalCode:   req.PostalCode,
		State:        req.State,
		Department:   req.Department,
		District:     req.District,
		Prefecture:   req.Prefecture,
		Province:     req.Province,
		Region:       req.Region,
		Municipality: req.Municipality,
		County:       req.County,
		Nation:       req.Nation,
		Phone:        req.Phone,
		MobilePhone:  req.MobilePhone,
	}
}
