package repository

import (
	"context"

	"github.com/commute-microservice/internal/domain"
)

// Geocoder - геокодирование адреса (почтового индекса) в координаты
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeocodeResponse, error)
}

// DirectionsProvider - построение маршрута в заданном режиме передвижения
type DirectionsProvider interface {
	Directions(ctx context.Context, query domain.DirectionsQuery) (*domain.DirectionsResponse, error)
}

// NearbySearcher - поиск мест заданного типа в радиусе от точки
type NearbySearcher interface {
	NearbySearch(ctx context.Context, query domain.NearbyQuery) (*domain.NearbySearchResponse, error)
}

// MapsRepository объединяет все три возможности внешнего картографического сервиса
type MapsRepository interface {
	Geocoder
	DirectionsProvider
	NearbySearcher
}
