package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type streamRepository struct {
	client       *redis.Client
	blockTimeout time.Duration
	logger       *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository.
// blockTimeout - сколько ConsumeBatch ждёт новых сообщений; 0 - не ждать.
func NewStreamRepository(client *redis.Client, blockTimeout time.Duration, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client:       client,
		blockTimeout: blockTimeout,
		logger:       logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// "$" - только новые сообщения, MKSTREAM создаст стрим, если его нет
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает до maxCount новых сообщений (">") для consumer.
// Пустой стрим - пустой срез без ошибки.
func (r *streamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(maxCount),
		Block:    r.blockTimeout,
	}
	if r.blockTimeout <= 0 {
		// go-redis не добавляет BLOCK при отрицательном значении
		args.Block = -1
	}

	result, err := r.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.StreamMessage{}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	return r.toMessages(result), nil
}

// ConsumePending перечитывает собственный PEL consumer'а начиная после afterID
func (r *streamRepository) ConsumePending(ctx context.Context, stream, group, consumer, afterID string, maxCount int) ([]domain.StreamMessage, error) {
	if afterID == "" {
		afterID = "0"
	}

	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, afterID},
		Count:    int64(maxCount),
		Block:    -1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.StreamMessage{}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Error("Failed to read pending messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read pending messages: %w", err)
	}

	return r.toMessages(result), nil
}

// ClaimIdle переназначает на consumer сообщения, зависшие у других (например, у упавшей реплики)
func (r *streamRepository) ClaimIdle(
	ctx context.Context,
	stream, group, consumer string,
	minIdle time.Duration,
	start string,
	maxCount int,
) ([]domain.StreamMessage, string, error) {
	if start == "" {
		start = "0-0"
	}

	claimed, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    group,
		Consumer: consumer,
		MinIdle:  minIdle,
		Start:    start,
		Count:    int64(maxCount),
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.StreamMessage{}, "0-0", nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		r.logger.Error("Failed to claim idle messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Error(err))
		return nil, "", fmt.Errorf("failed to claim idle messages: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, len(claimed))
	for _, msg := range claimed {
		messages = append(messages, r.toMessage(msg))
	}

	if len(messages) > 0 {
		r.logger.Info("Claimed idle messages",
			zap.String("stream", stream),
			zap.String("consumer", consumer),
			zap.Int("count", len(messages)))
	}

	return messages, next, nil
}

func (r *streamRepository) toMessages(result []redis.XStream) []domain.StreamMessage {
	messages := make([]domain.StreamMessage, 0)
	for _, s := range result {
		for _, msg := range s.Messages {
			messages = append(messages, r.toMessage(msg))
		}
	}
	return messages
}

func (r *streamRepository) toMessage(msg redis.XMessage) domain.StreamMessage {
	data, ok := msg.Values["data"].(string)
	if !ok {
		r.logger.Warn("Message does not contain 'data' field",
			zap.String("message_id", msg.ID))
	}
	return domain.StreamMessage{
		ID:   msg.ID,
		Data: data,
	}
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return r.AckMessages(ctx, stream, group, []string{messageID})
}

// AckMessages подтверждает обработку нескольких сообщений одной командой
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	err := r.client.XAck(ctx, stream, group, messageIDs...).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Strings("message_ids", messageIDs),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}

	r.logger.Debug("Messages acknowledged",
		zap.Int("count", len(messageIDs)))
	return nil
}

// PublishToStream сериализует data в JSON и кладёт в поле "data"
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", result))
	return nil
}
