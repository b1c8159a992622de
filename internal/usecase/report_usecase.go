package usecase

import (
	"context"
	"time"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/errors"
	"github.com/commute-microservice/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommuteReporter - то, что нужно HTTP-хендлеру, CLI и воркеру
type CommuteReporter interface {
	CreateReport(ctx context.Context, req dto.CommuteReportRequest) (*dto.CommuteReportResponse, error)
	GetReport(ctx context.Context, id uuid.UUID) (*dto.CommuteReportResponse, error)
}

// Ensure CommuteReportUseCase implements CommuteReporter interface
var _ CommuteReporter = (*CommuteReportUseCase)(nil)

// CommuteReportUseCase строит отчёт и, если архив включён, сохраняет его
type CommuteReportUseCase struct {
	builder ReportBuilder
	archive repository.ReportRepository // nil, если архив выключен
	logger  *zap.Logger
}

// NewCommuteReportUseCase создает новый CommuteReportUseCase
func NewCommuteReportUseCase(
	builder ReportBuilder,
	archive repository.ReportRepository,
	logger *zap.Logger,
) *CommuteReportUseCase {
	return &CommuteReportUseCase{
		builder: builder,
		archive: archive,
		logger:  logger,
	}
}

// CreateReport строит отчёт. Нерезолвленный origin - это не ошибка,
// а отчёт с OriginResolved=false. Ошибка сохранения в архив только логируется.
func (uc *CommuteReportUseCase) CreateReport(
	ctx context.Context,
	req dto.CommuteReportRequest,
) (*dto.CommuteReportResponse, error) {
	req.Normalize()
	if req.OriginPostcode == "" || req.DestinationAddress == "" {
		return nil, errors.ErrInvalidRequest
	}

	report := uc.builder.Build(ctx, req.OriginPostcode, req.DestinationAddress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &dto.CommuteReportResponse{Report: *report}

	if uc.archive == nil {
		return resp, nil
	}

	archived := &domain.ArchivedReport{
		ID:             uuid.New(),
		OriginPostcode: req.OriginPostcode,
		Report:         *report,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.archive.Save(ctx, archived); err != nil {
		uc.logger.Error("Failed to archive commute report, returning it unsaved",
			zap.String("postcode", req.OriginPostcode),
			zap.Error(err))
		return resp, nil
	}

	resp.ID = &archived.ID
	resp.CreatedAt = &archived.CreatedAt

	return resp, nil
}

// GetReport возвращает отчёт из архива
func (uc *CommuteReportUseCase) GetReport(ctx context.Context, id uuid.UUID) (*dto.CommuteReportResponse, error) {
	if uc.archive == nil {
		return nil, errors.ErrArchiveDisabled
	}

	archived, err := uc.archive.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to load archived report",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if archived == nil {
		return nil, errors.ErrReportNotFound
	}

	return &dto.CommuteReportResponse{
		ID:        &archived.ID,
		CreatedAt: &archived.CreatedAt,
		Report:    archived.Report,
	}, nil
}
