package repository

import (
	"context"

	"github.com/commute-microservice/internal/domain"
	"github.com/google/uuid"
)

// ReportRepository - архив построенных отчётов
type ReportRepository interface {
	// Save сохраняет отчёт
	Save(ctx context.Context, report *domain.ArchivedReport) error

	// GetByID возвращает отчёт по ID или (nil, nil), если его нет
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedReport, error)
}
