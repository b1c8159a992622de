package repository

import (
	"context"
	"time"

	"github.com/commute-microservice/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до maxCount новых сообщений для consumer group
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	// ConsumePending перечитывает сообщения, уже выданные consumer'у, но не подтверждённые.
	// Возвращаются только записи с ID больше afterID ("0" - с начала PEL).
	ConsumePending(ctx context.Context, stream, group, consumer, afterID string, maxCount int) ([]domain.StreamMessage, error)

	// ClaimIdle забирает себе сообщения, которые висят в PEL любого consumer'а дольше minIdle.
	// Возвращает курсор для следующего вызова; "0-0" - PEL просмотрен целиком.
	ClaimIdle(ctx context.Context, stream, group, consumer string, minIdle time.Duration, start string, maxCount int) ([]domain.StreamMessage, string, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// AckMessages подтверждает обработку нескольких сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
