package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/infrastructure/httpclient"
	"github.com/commute-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

type client struct {
	httpClient      *http.Client
	baseURL         string
	accessToken     string
	profile         string
	maxMatrixPoints int
	timeout         time.Duration
	logger          *zap.Logger
}

// NewMapboxClient создает новый клиент для Mapbox API
func NewMapboxClient(cfg *config.MapboxConfig, logger *zap.Logger) repository.MapboxRepository {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	maxPoints := cfg.MaxMatrixPoints
	if maxPoints <= 0 {
		maxPoints = 25
	}

	return &client{
		httpClient:      httpclient.New(httpclient.DefaultConfig(timeout)),
		baseURL:         cfg.BaseURL,
		accessToken:     cfg.AccessToken,
		profile:         cfg.WalkingProfile,
		maxMatrixPoints: maxPoints,
		timeout:         timeout,
		logger:          logger,
	}
}

// Directions строит пешеходный маршрут через Matrix API (1x1) и возвращает его
// в формате Directions: legs[0].distance / legs[0].duration.
// Mapbox не умеет общественный транспорт, поэтому transit возвращает ошибку.
func (c *client) Directions(ctx context.Context, query domain.DirectionsQuery) (*domain.DirectionsResponse, error) {
	if query.Mode != domain.TravelModeWalking {
		return nil, fmt.Errorf("mapbox: travel mode %q is not supported", query.Mode)
	}
	if query.Destination == nil {
		return nil, fmt.Errorf("mapbox: destination must be a coordinate")
	}

	matrix, err := c.GetWalkingMatrix(ctx,
		[]domain.Coordinate{query.Origin},
		[]domain.Coordinate{*query.Destination},
	)
	if err != nil {
		return nil, err
	}

	var distance, duration *float64
	if len(matrix.Distances) > 0 && len(matrix.Distances[0]) > 0 {
		distance = matrix.Distances[0][0]
	}
	if len(matrix.Durations) > 0 && len(matrix.Durations[0]) > 0 {
		duration = matrix.Durations[0][0]
	}

	if distance == nil {
		return &domain.DirectionsResponse{Status: domain.MapsStatusZeroResults}, nil
	}

	leg := domain.RouteLeg{
		Distance: domain.TextValue{
			Text:  utils.FormatWalkingDistance(*distance),
			Value: *distance,
		},
		Steps: []domain.RouteStep{{TravelMode: "WALKING"}},
	}
	if duration != nil {
		leg.Duration = domain.TextValue{
			Text:  formatDuration(*duration),
			Value: *duration,
		}
	}

	return &domain.DirectionsResponse{
		Status: domain.MapsStatusOK,
		Routes: []domain.Route{{Legs: []domain.RouteLeg{leg}}},
	}, nil
}

// GetWalkingMatrix возвращает матрицу пешеходных расстояний и времени
func (c *client) GetWalkingMatrix(
	ctx context.Context,
	origins []domain.Coordinate,
	destinations []domain.Coordinate,
) (*domain.MatrixResponse, error) {
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, fmt.Errorf("origins and destinations cannot be empty")
	}

	if len(origins)+len(destinations) > c.maxMatrixPoints {
		return nil, fmt.Errorf("total coordinates exceed Mapbox limit of %d points", c.maxMatrixPoints)
	}

	// Формируем список координат: сначала origins, потом destinations (lon,lat)
	coordinates := make([]string, 0, len(origins)+len(destinations))
	for _, coord := range origins {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", coord.Lon, coord.Lat))
	}
	for _, coord := range destinations {
		coordinates = append(coordinates, fmt.Sprintf("%f,%f", coord.Lon, coord.Lat))
	}

	sourcesIndices := make([]string, len(origins))
	for i := range origins {
		sourcesIndices[i] = strconv.Itoa(i)
	}
	destinationsIndices := make([]string, len(destinations))
	for i := range destinations {
		destinationsIndices[i] = strconv.Itoa(i + len(origins))
	}

	path := fmt.Sprintf("%s/directions-matrix/v1/%s/%s?sources=%s&destinations=%s&annotations=distance,duration",
		c.baseURL,
		c.profile,
		strings.Join(coordinates, ";"),
		strings.Join(sourcesIndices, ";"),
		strings.Join(destinationsIndices, ";"),
	)

	c.logger.Debug("Calling Mapbox Matrix API",
		zap.String("url", path),
		zap.Int("origins_count", len(origins)),
		zap.Int("destinations_count", len(destinations)))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path+"&access_token="+c.accessToken, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrixResp domain.MatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&matrixResp); err != nil {
		c.logger.Warn("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if matrixResp.Code != "Ok" {
		c.logger.Warn("Mapbox API returned non-OK code",
			zap.String("code", matrixResp.Code))
		return nil, fmt.Errorf("mapbox API returned code: %s", matrixResp.Code)
	}

	c.logger.Debug("Mapbox Matrix API call successful",
		zap.Int("distances_rows", len(matrixResp.Distances)),
		zap.Int("durations_rows", len(matrixResp.Durations)))

	return &matrixResp, nil
}

// formatDuration форматирует секунды как Google: "1 min", "12 mins", "1 hour 5 mins"
func formatDuration(seconds float64) string {
	mins := int(seconds/60 + 0.5)
	if mins < 1 {
		mins = 1
	}

	hours := mins / 60
	mins %= 60

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case hours == 0:
		return plural(mins, "min")
	case mins == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(mins, "min")
	}
}
