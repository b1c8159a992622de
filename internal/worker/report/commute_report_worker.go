package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/usecase"
	"github.com/commute-microservice/internal/usecase/dto"
	"github.com/commute-microservice/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// WorkerName - имя воркера в логах и WorkerManager
	WorkerName = "commute-report"

	defaultBatchSize   = 10
	maxParallelReports = 4                      // отчётов одновременно внутри одного batch
	emptyQueueSleep    = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep         = time.Second            // пауза после ошибки чтения

	// DefaultClaimMinIdle - сколько сообщение должно провисеть в чужом PEL, прежде чем его забрать
	DefaultClaimMinIdle = time.Minute
	recoveryInterval    = 30 * time.Second
)

// CommuteReportWorker читает stream:commute:request, строит отчёты
// и публикует результат в stream:commute:done
type CommuteReportWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	reportUC   usecase.CommuteReporter
	batchSize  int

	claimMinIdle time.Duration
	lastRecovery time.Time
}

// NewCommuteReportWorker создает новый CommuteReportWorker.
// claimMinIdle - через сколько неподтверждённые сообщения других consumer'ов
// считаются брошенными и забираются этим воркером.
func NewCommuteReportWorker(
	streamRepo repository.StreamRepository,
	reportUC usecase.CommuteReporter,
	consumerGroup string,
	batchSize int,
	claimMinIdle time.Duration,
	logger *zap.Logger,
) *CommuteReportWorker {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if claimMinIdle <= 0 {
		claimMinIdle = DefaultClaimMinIdle
	}

	return &CommuteReportWorker{
		BaseWorker:   worker.NewBaseWorker(WorkerName, consumerGroup, logger),
		streamRepo:   streamRepo,
		reportUC:     reportUC,
		batchSize:    batchSize,
		claimMinIdle: claimMinIdle,
	}
}

// Start запускает цикл чтения. Возвращает nil после Stop и ctx.Err() после отмены ctx.
func (w *CommuteReportWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CommuteReportWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamCommuteRequest, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		if time.Since(w.lastRecovery) >= recoveryInterval {
			w.recoverPending(ctx)
		}

		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				logger.Error("Failed to process batch", zap.Error(err))
				w.sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает один batch.
// Возвращает количество прочитанных сообщений.
func (w *CommuteReportWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamCommuteRequest,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))
	w.processMessages(ctx, messages)

	return len(messages), nil
}

// recoverPending повторно обрабатывает неподтверждённые сообщения:
// сначала собственный PEL (после отмены или неудачной публикации),
// затем сообщения, брошенные другими consumer'ами (например, после рестарта с новым pid).
func (w *CommuteReportWorker) recoverPending(ctx context.Context) {
	logger := w.Logger()
	w.lastRecovery = time.Now()

	recovered := 0

	afterID := "0"
	for ctx.Err() == nil && !w.IsStopped() {
		messages, err := w.streamRepo.ConsumePending(ctx, domain.StreamCommuteRequest, w.ConsumerGroup(), w.ConsumerName(), afterID, w.batchSize)
		if err != nil {
			logger.Error("Failed to read pending messages", zap.Error(err))
			break
		}
		if len(messages) == 0 {
			break
		}
		w.processMessages(ctx, messages)
		recovered += len(messages)
		afterID = messages[len(messages)-1].ID
	}

	start := "0-0"
	for ctx.Err() == nil && !w.IsStopped() {
		messages, next, err := w.streamRepo.ClaimIdle(ctx, domain.StreamCommuteRequest, w.ConsumerGroup(), w.ConsumerName(), w.claimMinIdle, start, w.batchSize)
		if err != nil {
			logger.Error("Failed to claim idle messages", zap.Error(err))
			break
		}
		if len(messages) > 0 {
			w.processMessages(ctx, messages)
			recovered += len(messages)
		}
		if next == "" || next == "0-0" {
			break
		}
		start = next
	}

	if recovered > 0 {
		logger.Info("Pending messages reprocessed", zap.Int("count", recovered))
	}
}

// processMessages обрабатывает сообщения параллельно и подтверждает успешно обработанные
func (w *CommuteReportWorker) processMessages(ctx context.Context, messages []domain.StreamMessage) {
	logger := w.Logger()

	// done[i] == true - сообщение i можно подтверждать
	done := make([]bool, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReports)
	for i, msg := range messages {
		i, msg := i, msg
		g.Go(func() error {
			done[i] = w.handleMessage(gctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	ackIDs := make([]string, 0, len(messages))
	for i, msg := range messages {
		if done[i] {
			ackIDs = append(ackIDs, msg.ID)
		}
	}

	// неподтверждённые останутся в PEL, их подберёт recoverPending
	if err := w.streamRepo.AckMessages(ctx, domain.StreamCommuteRequest, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("received", len(messages)),
		zap.Int("acked", len(ackIDs)))
}

// handleMessage строит отчёт для одного сообщения и публикует результат.
// false - сообщение не подтверждать (вызов отменён или публикация не удалась).
func (w *CommuteReportWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) bool {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	event, err := parseMessage(msg)
	if err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		// битое сообщение подтверждаем, чтобы не застревало
		return true
	}

	logger = logger.With(zap.String("request_id", event.RequestID.String()))

	doneEvent := &domain.CommuteDoneEvent{RequestID: event.RequestID}

	if err := event.Validate(); err != nil {
		logger.Warn("Invalid commute request", zap.Error(err))
		doneEvent.Error = err.Error()
	} else {
		resp, err := w.reportUC.CreateReport(ctx, dto.CommuteReportRequest{
			OriginPostcode:     event.OriginPostcode,
			DestinationAddress: event.DestinationAddress,
		})
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Report cancelled, leaving message pending")
				return false
			}
			logger.Error("Failed to build report", zap.Error(err))
			doneEvent.Error = err.Error()
		} else {
			doneEvent.ReportID = resp.ID
			doneEvent.Report = &resp.Report
		}
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamCommuteDone, doneEvent); err != nil {
		logger.Error("Failed to publish done event", zap.Error(err))
		return false
	}

	return true
}

func (w *CommuteReportWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	case <-w.StopChan():
	}
}

// parseMessage парсит сообщение из стрима в CommuteRequestEvent
func parseMessage(msg domain.StreamMessage) (*domain.CommuteRequestEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.CommuteRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event.Normalize()

	return &event, nil
}
