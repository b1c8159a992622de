package usecase

import (
	"context"
	"fmt"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// CommuteCalculator - поездка на общественном транспорте от origin до адреса назначения
type CommuteCalculator struct {
	directions repository.DirectionsProvider
	logger     *zap.Logger
}

// NewCommuteCalculator создает новый CommuteCalculator
func NewCommuteCalculator(directions repository.DirectionsProvider, logger *zap.Logger) *CommuteCalculator {
	return &CommuteCalculator{
		directions: directions,
		logger:     logger,
	}
}

// TransitCommute запрашивает маршрут в режиме transit. Адрес назначения передаётся
// как есть, без геокодинга. При неуспехе возвращает DurationText = "unavailable"
// и TransitLegCount = nil.
func (c *CommuteCalculator) TransitCommute(ctx context.Context, origin domain.Coordinate, destinationAddress string) domain.CommuteInfo {
	leg, err := c.transitLeg(ctx, origin, destinationAddress)
	if err != nil {
		c.logger.Warn("Transit commute unavailable",
			zap.String("destination", destinationAddress),
			zap.Error(err))
		return unavailableCommute()
	}

	// считаем только участки на транспорте, без пеших и ожидания
	transitLegs := 0
	for _, step := range leg.Steps {
		if step.TravelMode == domain.StepTravelModeTransit {
			transitLegs++
		}
	}

	duration := leg.Duration.Text
	return domain.CommuteInfo{
		DurationText:    &duration,
		TransitLegCount: &transitLegs,
	}
}

// transitLeg возвращает legs[0] маршрута или ErrCommuteUnavailable
func (c *CommuteCalculator) transitLeg(ctx context.Context, origin domain.Coordinate, destinationAddress string) (*domain.RouteLeg, error) {
	resp, err := c.directions.Directions(ctx, domain.DirectionsQuery{
		Origin:             origin,
		DestinationAddress: destinationAddress,
		Mode:               domain.TravelModeTransit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCommuteUnavailable, err)
	}

	if resp.Status != domain.MapsStatusOK {
		return nil, fmt.Errorf("%w: status %s", errors.ErrCommuteUnavailable, resp.Status)
	}

	leg, ok := resp.FirstLeg()
	if !ok {
		return nil, fmt.Errorf("%w: no route legs", errors.ErrCommuteUnavailable)
	}

	return leg, nil
}

func unavailableCommute() domain.CommuteInfo {
	text := domain.CommuteUnavailable
	return domain.CommuteInfo{DurationText: &text}
}
