package util

import (
	"context"
	"time"

	"widgetfactory/internal/app/store/entity"
)

// CategoryCache интерфейс для работы с кешем категорий
// Используется для dependency injection и упрощения тестирования
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.ProductCategory, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.ProductCategory, error)
	DeleteCategories(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
