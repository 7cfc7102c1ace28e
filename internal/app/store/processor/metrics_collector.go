package processor

import (
	"context"

	"widgetfactory/internal/app/store/entity"
	"widgetfactory/internal/app/store/repository"
	"widgetfactory/pkg/logger"
	"widgetfactory/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// MetricsCollector периодически пересчитывает бизнес-метрики для Prometheus:
// количество заказов по статусам и число дефицитных SKU
type MetricsCollector struct {
	cron              *cron.Cron
	orderRepo         repository.OrderRepository
	skuRepo           repository.SKURepository
	lowStockThreshold int
}

// NewMetricsCollector создает новый сборщик бизнес-метрик
func NewMetricsCollector(
	orderRepo repository.OrderRepository,
	skuRepo repository.SKURepository,
	lowStockThreshold int,
) *MetricsCollector {
	return &MetricsCollector{
		cron:              cron.New(),
		orderRepo:         orderRepo,
		skuRepo:           skuRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// Start регистрирует задачу по расписанию и сразу выполняет первый сбор
func (m *MetricsCollector) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting metrics collector")

	_, err := m.cron.AddFunc(schedule, func() {
		m.Collect(ctx)
	})
	if err != nil {
		return err
	}

	m.cron.Start()

	m.Collect(ctx)

	return nil
}

// Collect выполняет один цикл пересчета метрик
func (m *MetricsCollector) Collect(ctx context.Context) {
	counts, err := m.orderRepo.CountByStatus(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to count orders by status")
	} else {
		// Обнуляем все статусы, чтобы исчезнувшие не застревали в gauge
		for _, status := range entity.AllOrderStatuses {
			metrics.OrdersByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
		}
	}

	lowStock, err := m.skuRepo.CountLowStock(ctx, m.lowStockThreshold)
	if err != nil {
		logger.Error().Err(err).Msg("failed to count low stock skus")
	} else {
		metrics.SKUsLowStock.Set(float64(lowStock))
	}
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (m *MetricsCollector) Stop() {
	logger.Info().Msg("stopping metrics collector")
	ctx := m.cron.Stop()
	<-ctx.Done()
}

// GetEntries возвращает зарегистрированные cron-задачи
func (m *MetricsCollector) GetEntries() []cron.Entry {
	return m.cron.Entries()
}
