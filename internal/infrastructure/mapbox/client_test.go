package mapbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptrFloat(v float64) *float64 {
	return &v
}

func testConfig(baseURL string) *config.MapboxConfig {
	return &config.MapboxConfig{
		AccessToken:     "test_token",
		BaseURL:         baseURL,
		MaxMatrixPoints: 25,
		WalkingProfile:  "mapbox/walking",
		RequestTimeout:  30,
	}
}

func TestClient_GetWalkingMatrix(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		mockResp := domain.MatrixResponse{
			Code: "Ok",
			Distances: [][]*float64{
				{ptrFloat(100.0), ptrFloat(200.0), ptrFloat(300.0)},
			},
			Durations: [][]*float64{
				{ptrFloat(60.0), ptrFloat(120.0), ptrFloat(180.0)},
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.URL.Path, "/directions-matrix/v1/mapbox/walking/"))
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(mockResp)
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), logger)

		origins := []domain.Coordinate{
			{Lat: 51.4000, Lon: 0.0200},
		}
		destinations := []domain.Coordinate{
			{Lat: 51.4100, Lon: 0.0300},
			{Lat: 51.4150, Lon: 0.0350},
			{Lat: 51.4200, Lon: 0.0400},
		}

		result, err := client.GetWalkingMatrix(context.Background(), origins, destinations)
		require.NoError(t, err)
		assert.Equal(t, "Ok", result.Code)
		require.Len(t, result.Distances, 1)
		require.Len(t, result.Distances[0], 3)
		assert.Equal(t, 100.0, *result.Distances[0][0])
		assert.Equal(t, 300.0, *result.Distances[0][2])
	})

	t.Run("empty origins", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), logger)

		result, err := client.GetWalkingMatrix(context.Background(), []domain.Coordinate{}, []domain.Coordinate{{Lat: 51.41, Lon: 0.03}})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("exceeds mapbox limit", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), logger)

		destinations := make([]domain.Coordinate, 25)
		for i := range destinations {
			destinations[i] = domain.Coordinate{Lat: 51.41, Lon: 0.03}
		}

		result, err := client.GetWalkingMatrix(context.Background(), []domain.Coordinate{{Lat: 51.40, Lon: 0.02}}, destinations)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "exceed Mapbox limit")
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code":"InvalidInput","message":"Invalid coordinates"}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), logger)

		result, err := client.GetWalkingMatrix(context.Background(),
			[]domain.Coordinate{{Lat: 51.40, Lon: 0.02}},
			[]domain.Coordinate{{Lat: 51.41, Lon: 0.03}})
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "mapbox API error")
	})
}

func TestClient_Directions(t *testing.T) {
	logger := zap.NewNop()
	origin := domain.Coordinate{Lat: 51.40, Lon: 0.02}
	station := domain.Coordinate{Lat: 51.41, Lon: 0.03}

	t.Run("walking distance formatted like google", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"Ok","distances":[[512.4]],"durations":[[410]]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), logger)

		resp, err := client.Directions(context.Background(), domain.DirectionsQuery{
			Origin:      origin,
			Destination: &station,
			Mode:        domain.TravelModeWalking,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MapsStatusOK, resp.Status)

		leg, ok := resp.FirstLeg()
		require.True(t, ok)
		assert.Equal(t, "512 m", leg.Distance.Text)
		assert.Equal(t, "7 mins", leg.Duration.Text)
	})

	t.Run("no route yields zero results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":"Ok","distances":[[null]],"durations":[[null]]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), logger)

		resp, err := client.Directions(context.Background(), domain.DirectionsQuery{
			Origin:      origin,
			Destination: &station,
			Mode:        domain.TravelModeWalking,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.MapsStatusZeroResults, resp.Status)
	})

	t.Run("transit is not supported", func(t *testing.T) {
		client := NewMapboxClient(testConfig("https://api.mapbox.com"), logger)

		resp, err := client.Directions(context.Background(), domain.DirectionsQuery{
			Origin:             origin,
			DestinationAddress: "SW1W 0DT",
			Mode:               domain.TravelModeTransit,
		})
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 min", formatDuration(10))
	assert.Equal(t, "7 mins", formatDuration(410))
	assert.Equal(t, "1 hour", formatDuration(3600))
	assert.Equal(t, "2 hours 5 mins", formatDuration(7500))
}
