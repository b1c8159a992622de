package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reportRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReportRepository создает архив отчётов в таблице commute_reports
func NewReportRepository(db *DB, logger *zap.Logger) repository.ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

// reportRow - строка commute_reports; сам отчёт хранится в JSONB
type reportRow struct {
	ID                 uuid.UUID `db:"id"`
	OriginPostcode     string    `db:"origin_postcode"`
	DestinationAddress string    `db:"destination_address"`
	OriginResolved     bool      `db:"origin_resolved"`
	Report             []byte    `db:"report"`
	CreatedAt          time.Time `db:"created_at"`
}

const insertReportQuery = `
	INSERT INTO commute_reports (id, origin_postcode, destination_address, origin_resolved, report, created_at)
	VALUES ($1, $2, $3, $4, $5::jsonb, $6)
`

const selectReportQuery = `
	SELECT id, origin_postcode, destination_address, origin_resolved, report, created_at
	FROM commute_reports
	WHERE id = $1
`

// Save сохраняет отчёт
func (r *reportRepository) Save(ctx context.Context, report *domain.ArchivedReport) error {
	payload, err := json.Marshal(report.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertReportQuery,
		report.ID,
		report.OriginPostcode,
		report.Report.DestinationAddress,
		report.Report.OriginResolved,
		string(payload),
		report.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert commute report",
			zap.String("id", report.ID.String()),
			zap.Error(err))
		return fmt.Errorf("insert commute report: %w", err)
	}

	return nil
}

// GetByID возвращает отчёт или (nil, nil), если его нет
func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedReport, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row, selectReportQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get commute report",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get commute report: %w", err)
	}

	var report domain.CommuteReport
	if err := json.Unmarshal(row.Report, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}

	return &domain.ArchivedReport{
		ID:             row.ID,
		OriginPostcode: row.OriginPostcode,
		Report:         report,
		CreatedAt:      row.CreatedAt,
	}, nil
}
