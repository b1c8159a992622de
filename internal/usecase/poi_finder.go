package usecase

import (
	"context"
	"fmt"

	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// PlaceSearch - параметры одного поиска мест вокруг origin
type PlaceSearch struct {
	Category     domain.PlaceCategory
	PlaceType    string
	RadiusMeters int
	Keyword      *string
}

// PointOfInterestFinder ищет станции и школы рядом с точкой
type PointOfInterestFinder struct {
	searcher repository.NearbySearcher
	logger   *zap.Logger
}

// NewPointOfInterestFinder создает новый PointOfInterestFinder
func NewPointOfInterestFinder(searcher repository.NearbySearcher, logger *zap.Logger) *PointOfInterestFinder {
	return &PointOfInterestFinder{
		searcher: searcher,
		logger:   logger,
	}
}

// Nearby возвращает места в порядке выдачи провайдера, без пересортировки.
// WalkingDistance не заполняется. При неуспехе - пустой список.
func (f *PointOfInterestFinder) Nearby(ctx context.Context, origin domain.Coordinate, search PlaceSearch) []domain.PlaceOfInterest {
	results, err := f.search(ctx, origin, search)
	if err != nil {
		f.logger.Warn("Nearby search failed",
			zap.String("type", search.PlaceType),
			zap.Int("radius", search.RadiusMeters),
			zap.Error(err))
		return []domain.PlaceOfInterest{}
	}

	places := make([]domain.PlaceOfInterest, 0, len(results))
	for _, r := range results {
		places = append(places, domain.PlaceOfInterest{
			Name:       r.Name,
			Coordinate: r.Geometry.Location.Coordinate(),
			Category:   search.Category,
		})
	}

	return places
}

func (f *PointOfInterestFinder) search(ctx context.Context, origin domain.Coordinate, search PlaceSearch) ([]domain.PlaceResult, error) {
	resp, err := f.searcher.NearbySearch(ctx, domain.NearbyQuery{
		Location:     origin,
		RadiusMeters: search.RadiusMeters,
		PlaceType:    search.PlaceType,
		Keyword:      search.Keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrPoiQueryFailed, err)
	}

	if resp.Status != domain.MapsStatusOK {
		return nil, fmt.Errorf("%w: status %s", errors.ErrPoiQueryFailed, resp.Status)
	}

	return resp.Results, nil
}
