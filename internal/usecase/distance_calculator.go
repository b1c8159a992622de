package usecase

import (
	"context"
	"fmt"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// DistanceCalculator считает пешеходное расстояние между двумя точками.
// Источник маршрута подставляется снаружи: Google Directions или Mapbox Matrix.
type DistanceCalculator struct {
	directions repository.DirectionsProvider
	logger     *zap.Logger
}

// NewDistanceCalculator создает новый DistanceCalculator
func NewDistanceCalculator(directions repository.DirectionsProvider, logger *zap.Logger) *DistanceCalculator {
	return &DistanceCalculator{
		directions: directions,
		logger:     logger,
	}
}

// WalkingDistance возвращает текст расстояния ("0.5 km") или nil.
// Никогда не возвращает ошибку: расстояние только украшает отчёт.
func (d *DistanceCalculator) WalkingDistance(ctx context.Context, from, to domain.Coordinate) *string {
	text, err := d.walkingDistance(ctx, from, to)
	if err != nil {
		d.logger.Debug("Walking distance unavailable",
			zap.String("to", to.String()),
			zap.Error(err))
		return nil
	}
	return &text
}

func (d *DistanceCalculator) walkingDistance(ctx context.Context, from, to domain.Coordinate) (string, error) {
	resp, err := d.directions.Directions(ctx, domain.DirectionsQuery{
		Origin:      from,
		Destination: &to,
		Mode:        domain.TravelModeWalking,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDistanceUnavailable, err)
	}

	if resp.Status != domain.MapsStatusOK {
		return "", fmt.Errorf("%w: status %s", errors.ErrDistanceUnavailable, resp.Status)
	}

	leg, ok := resp.FirstLeg()
	if !ok || leg.Distance.Text == "" {
		return "", fmt.Errorf("%w: empty route", errors.ErrDistanceUnavailable)
	}

	return leg.Distance.Text, nil
}
