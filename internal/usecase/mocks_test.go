package usecase_test

import (
	"context"

	"github.com/commute-microservice/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMapsRepository is a mock of MapsRepository
type MockMapsRepository struct {
	mock.Mock
}

func (m *MockMapsRepository) Geocode(ctx context.Context, address string) (*domain.GeocodeResponse, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResponse), args.Error(1)
}

func (m *MockMapsRepository) Directions(ctx context.Context, query domain.DirectionsQuery) (*domain.DirectionsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResponse), args.Error(1)
}

func (m *MockMapsRepository) NearbySearch(ctx context.Context, query domain.NearbyQuery) (*domain.NearbySearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NearbySearchResponse), args.Error(1)
}

// MockReportRepository is a mock of ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Save(ctx context.Context, report *domain.ArchivedReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArchivedReport), args.Error(1)
}

// MockReportBuilder is a mock of ReportBuilder
type MockReportBuilder struct {
	mock.Mock
}

func (m *MockReportBuilder) Build(ctx context.Context, originPostcode, destinationAddress string) *domain.CommuteReport {
	args := m.Called(ctx, originPostcode, destinationAddress)
	return args.Get(0).(*domain.CommuteReport)
}

// --- fixtures ---

func geocodeOK(lat, lng float64) *domain.GeocodeResponse {
	return &domain.GeocodeResponse{
		Status: domain.MapsStatusOK,
		Results: []domain.GeocodeResult{
			{Geometry: domain.Geometry{Location: domain.LatLng{Lat: lat, Lng: lng}}},
		},
	}
}

func transitOK(duration string, stepModes ...string) *domain.DirectionsResponse {
	steps := make([]domain.RouteStep, len(stepModes))
	for i, m := range stepModes {
		steps[i] = domain.RouteStep{TravelMode: m}
	}
	return &domain.DirectionsResponse{
		Status: domain.MapsStatusOK,
		Routes: []domain.Route{{Legs: []domain.RouteLeg{{
			Duration: domain.TextValue{Text: duration},
			Steps:    steps,
		}}}},
	}
}

func walkingOK(distance string) *domain.DirectionsResponse {
	return &domain.DirectionsResponse{
		Status: domain.MapsStatusOK,
		Routes: []domain.Route{{Legs: []domain.RouteLeg{{
			Distance: domain.TextValue{Text: distance},
		}}}},
	}
}

func place(name string, lat, lng float64) domain.PlaceResult {
	return domain.PlaceResult{
		Name:     name,
		Geometry: domain.Geometry{Location: domain.LatLng{Lat: lat, Lng: lng}},
	}
}

func placesOK(results ...domain.PlaceResult) *domain.NearbySearchResponse {
	return &domain.NearbySearchResponse{Status: domain.MapsStatusOK, Results: results}
}

func statusOnly(status string) *domain.DirectionsResponse {
	return &domain.DirectionsResponse{Status: status}
}

// --- matchers ---

func transitQuery() interface{} {
	return mock.MatchedBy(func(q domain.DirectionsQuery) bool {
		return q.Mode == domain.TravelModeTransit
	})
}

func walkingTo(lat, lon float64) interface{} {
	return mock.MatchedBy(func(q domain.DirectionsQuery) bool {
		return q.Mode == domain.TravelModeWalking &&
			q.Destination != nil &&
			q.Destination.Lat == lat && q.Destination.Lon == lon
	})
}

func anyWalking() interface{} {
	return mock.MatchedBy(func(q domain.DirectionsQuery) bool {
		return q.Mode == domain.TravelModeWalking
	})
}

func nearbyOfType(placeType string) interface{} {
	return mock.MatchedBy(func(q domain.NearbyQuery) bool {
		return q.PlaceType == placeType
	})
}
