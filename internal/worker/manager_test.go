package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingWorker работает, пока не вызван Stop
type blockingWorker struct {
	*BaseWorker
	started chan struct{}
	ignore  bool // не реагировать на Stop
}

func newBlockingWorker(name string, ignoreStop bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: NewBaseWorker(name, "test-group", zap.NewNop()),
		started:    make(chan struct{}),
		ignore:     ignoreStop,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	if w.ignore {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	w1 := newBlockingWorker("first", false)
	w2 := newBlockingWorker("second", false)
	m.Register(w1)
	m.Register(w2)

	require.NoError(t, m.Start(context.Background()))

	for _, w := range []*blockingWorker{w1, w2} {
		select {
		case <-w.started:
		case <-time.After(time.Second):
			t.Fatalf("worker %s did not start", w.Name())
		}
	}

	require.NoError(t, m.Stop())
	assert.True(t, w1.IsStopped())
	assert.True(t, w2.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(50*time.Millisecond, zap.NewNop())
	w := newBlockingWorker("stubborn", true)
	m.Register(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, m.Start(ctx))
	<-w.started

	err := m.Stop()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewWorkerManager_DefaultTimeout(t *testing.T) {
	m := NewWorkerManager(0, zap.NewNop())
	assert.Equal(t, DefaultShutdownTimeout, m.shutdownTimeout)
}

func TestBaseWorker_ConsumerName(t *testing.T) {
	w := NewBaseWorker("name", "group", zap.NewNop())
	assert.Equal(t, "name", w.Name())
	assert.Equal(t, "group", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
	assert.False(t, w.IsStopped())
}
