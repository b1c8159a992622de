package usecase

import (
	"context"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// GeocodeResolver - почтовый индекс -> координата точки отправления
type GeocodeResolver struct {
	geocoder repository.Geocoder
	logger   *zap.Logger
}

// NewGeocodeResolver создает новый GeocodeResolver
func NewGeocodeResolver(geocoder repository.Geocoder, logger *zap.Logger) *GeocodeResolver {
	return &GeocodeResolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve геокодирует почтовый индекс одним запросом, без повторов.
// Любой неуспех (ошибка транспорта, статус != OK, пустой results,
// координата вне диапазона) возвращается как ErrOriginUnresolved.
func (r *GeocodeResolver) Resolve(ctx context.Context, postcode string) (domain.Coordinate, error) {
	resp, err := r.geocoder.Geocode(ctx, postcode)
	if err != nil {
		r.logger.Warn("Geocode request failed",
			zap.String("postcode", postcode),
			zap.Error(err))
		return domain.Coordinate{}, errors.ErrOriginUnresolved.WithDetails(map[string]interface{}{
			"postcode": postcode,
			"reason":   err.Error(),
		})
	}

	if resp == nil {
		r.logger.Warn("Geocode returned empty response", zap.String("postcode", postcode))
		return domain.Coordinate{}, errors.ErrOriginUnresolved.WithDetails(map[string]interface{}{
			"postcode": postcode,
			"reason":   "empty response",
		})
	}

	if resp.Status != domain.MapsStatusOK || len(resp.Results) == 0 {
		r.logger.Info("Postcode not resolved",
			zap.String("postcode", postcode),
			zap.String("status", resp.Status),
			zap.Int("results", len(resp.Results)))
		return domain.Coordinate{}, errors.ErrOriginUnresolved.WithDetails(map[string]interface{}{
			"postcode": postcode,
			"status":   resp.Status,
		})
	}

	origin := resp.Results[0].Geometry.Location.Coordinate()
	if !origin.Valid() {
		r.logger.Warn("Geocode returned invalid coordinates",
			zap.String("postcode", postcode),
			zap.Float64("lat", origin.Lat),
			zap.Float64("lon", origin.Lon))
		return domain.Coordinate{}, errors.ErrOriginUnresolved.WithDetails(map[string]interface{}{
			"postcode": postcode,
			"reason":   "invalid coordinates",
		})
	}

	return origin, nil
}
