package redis_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	redisRepo "github.com/commute-microservice/internal/repository/redis"
)

const (
	testStream = "test:stream:commute:request"
	testGroup  = "test-group"
)

// newTestRedis поднимает miniredis, поэтому тесты не зависят от внешнего Redis
func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	err := repo.CreateConsumerGroup(ctx, testStream, testGroup)
	require.NoError(t, err)

	exists, err := client.Exists(ctx, testStream).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	// повторное создание - BUSYGROUP, не ошибка
	err = repo.CreateConsumerGroup(ctx, testStream, testGroup)
	assert.NoError(t, err)
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))

	events := []domain.CommuteRequestEvent{
		{RequestID: uuid.New(), OriginPostcode: "BR76PT", DestinationAddress: "SW1W 0DT"},
		{RequestID: uuid.New(), OriginPostcode: "SE10 9NF", DestinationAddress: "EC2M 7PY"},
		{RequestID: uuid.New(), OriginPostcode: "N1 9GU", DestinationAddress: "WC2N 5DU"},
	}
	for _, e := range events {
		require.NoError(t, repo.PublishToStream(ctx, testStream, e))
	}

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	var first domain.CommuteRequestEvent
	require.NoError(t, json.Unmarshal([]byte(batch[0].Data), &first))
	assert.Equal(t, events[0], first)

	rest, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	var third domain.CommuteRequestEvent
	require.NoError(t, json.Unmarshal([]byte(rest[0].Data), &third))
	assert.Equal(t, "N1 9GU", third.OriginPostcode)
}

func TestStreamRepository_ConsumeBatch_Empty(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 10)
	require.NoError(t, err)
	assert.NotNil(t, batch)
	assert.Empty(t, batch)
}

func TestStreamRepository_ConsumeBatch_UnknownGroup(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())

	_, err := repo.ConsumeBatch(context.Background(), testStream, "missing-group", "consumer-1", 10)
	assert.Error(t, err)
}

func TestStreamRepository_AckMessages(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PublishToStream(ctx, testStream, domain.CommuteRequestEvent{
			RequestID:          uuid.New(),
			OriginPostcode:     "BR76PT",
			DestinationAddress: "SW1W 0DT",
		}))
	}

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "consumer-1", 10)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	pending, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending.Count)

	require.NoError(t, repo.AckMessages(ctx, testStream, testGroup, []string{batch[0].ID, batch[1].ID}))
	require.NoError(t, repo.AckMessage(ctx, testStream, testGroup, batch[2].ID))

	pending, err = client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)

	// пустой список - no-op
	assert.NoError(t, repo.AckMessages(ctx, testStream, testGroup, nil))
}

func publishRequests(t *testing.T, repo repository.StreamRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, repo.PublishToStream(context.Background(), testStream, domain.CommuteRequestEvent{
			RequestID:          uuid.New(),
			OriginPostcode:     "BR76PT",
			DestinationAddress: "SW1W 0DT",
		}))
	}
}

func TestStreamRepository_ConsumePending(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	publishRequests(t, repo, 3)

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "host-100", 10)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	require.NoError(t, repo.AckMessage(ctx, testStream, testGroup, batch[1].ID))

	// ">" больше ничего не отдаёт, неподтверждённые видны только через PEL
	fresh, err := repo.ConsumeBatch(ctx, testStream, testGroup, "host-100", 10)
	require.NoError(t, err)
	assert.Empty(t, fresh)

	pending, err := repo.ConsumePending(ctx, testStream, testGroup, "host-100", "0", 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, batch[0].ID, pending[0].ID)
	assert.Equal(t, batch[2].ID, pending[1].ID)
	assert.Equal(t, batch[0].Data, pending[0].Data)

	// продолжение после последнего ID
	rest, err := repo.ConsumePending(ctx, testStream, testGroup, "host-100", pending[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, batch[2].ID, rest[0].ID)

	// чужой PEL пуст
	other, err := repo.ConsumePending(ctx, testStream, testGroup, "host-200", "0", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStreamRepository_ClaimIdle(t *testing.T) {
	_, client := newTestRedis(t)
	repo := redisRepo.NewStreamRepository(client, 0, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, testGroup))
	publishRequests(t, repo, 2)

	batch, err := repo.ConsumeBatch(ctx, testStream, testGroup, "host-100", 10)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	// ещё не простаивают достаточно долго
	claimed, _, err := repo.ClaimIdle(ctx, testStream, testGroup, "host-200", time.Hour, "0-0", 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	time.Sleep(20 * time.Millisecond)

	claimed, _, err = repo.ClaimIdle(ctx, testStream, testGroup, "host-200", 10*time.Millisecond, "0-0", 10)
	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, batch[0].ID, claimed[0].ID)
	assert.Equal(t, batch[0].Data, claimed[0].Data)

	// теперь сообщения в PEL нового consumer'а
	mine, err := repo.ConsumePending(ctx, testStream, testGroup, "host-200", "0", 10)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	old, err := repo.ConsumePending(ctx, testStream, testGroup, "host-100", "0", 10)
	require.NoError(t, err)
	assert.Empty(t, old)

	require.NoError(t, repo.AckMessages(ctx, testStream, testGroup, []string{claimed[0].ID, claimed[1].ID}))
	summary, err := client.XPending(ctx, testStream, testGroup).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)
}

func TestNewRedis(t *testing.T) {
	mr, _ := newTestRedis(t)

	cfg := &config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)}
	r, err := redisRepo.NewRedis(cfg, zap.NewNop())
	require.NoError(t, err)
	defer r.Close()

	assert.NoError(t, r.Health(context.Background()))
	assert.NotNil(t, r.Client())
}

func TestNewRedis_Unavailable(t *testing.T) {
	mr, _ := newTestRedis(t)
	port := mustPort(t, mr)
	mr.Close()

	_, err := redisRepo.NewRedis(&config.RedisConfig{Host: "127.0.0.1", Port: port}, zap.NewNop())
	assert.Error(t, err)
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	var port int
	_, err := fmt.Sscanf(mr.Port(), "%d", &port)
	require.NoError(t, err)
	return port
}
