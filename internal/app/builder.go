package app

import (
	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/infrastructure/googlemaps"
	"github.com/commute-microservice/internal/infrastructure/mapbox"
	"github.com/commute-microservice/internal/usecase"
	"go.uber.org/zap"
)

// NewReportBuilder собирает CommuteReportBuilder из конфигурации.
// Google Maps - geocode, transit и nearby search; пешеходные расстояния
// берутся у провайдера из MAPS_WALKING_PROVIDER.
func NewReportBuilder(cfg *config.Config, logger *zap.Logger) *usecase.CommuteReportBuilder {
	maps := googlemaps.NewGoogleMapsClient(&cfg.Maps, nil, logger)

	return usecase.NewCommuteReportBuilder(
		usecase.NewGeocodeResolver(maps, logger),
		usecase.NewCommuteCalculator(maps, logger),
		usecase.NewPointOfInterestFinder(maps, logger),
		usecase.NewDistanceCalculator(walkingProvider(cfg, maps, logger), logger),
		usecase.NewReportOptions(cfg.Report, cfg.Maps),
		logger,
	)
}

func walkingProvider(cfg *config.Config, maps repository.MapsRepository, logger *zap.Logger) repository.DirectionsProvider {
	if cfg.Maps.WalkingProvider == config.WalkingProviderMapbox {
		logger.Info("Walking distances via Mapbox", zap.String("profile", cfg.Mapbox.WalkingProfile))
		return mapbox.NewMapboxClient(&cfg.Mapbox, logger)
	}
	return maps
}
