package repository

import (
	"context"

	"github.com/commute-microservice/internal/domain"
)

// MapboxRepository определяет методы для работы с Mapbox API.
// Mapbox умеет только пешеходные маршруты, поэтому он также реализует
// DirectionsProvider для режима walking.
type MapboxRepository interface {
	DirectionsProvider

	// GetWalkingMatrix возвращает матрицу пешеходных расстояний и времени
	// между источниками и пунктами назначения
	GetWalkingMatrix(
		ctx context.Context,
		origins []domain.Coordinate,
		destinations []domain.Coordinate,
	) (*domain.MatrixResponse, error)
}
