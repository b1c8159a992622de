package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"github.com/commute-microservice/internal/domain/repository"
	"github.com/commute-microservice/internal/infrastructure/httpclient"
	"go.uber.org/zap"
)

const (
	geocodePath      = "/maps/api/geocode/json"
	directionsPath   = "/maps/api/directions/json"
	nearbySearchPath = "/maps/api/place/nearbysearch/json"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewGoogleMapsClient создает клиент для Google Maps (Geocoding, Directions, Places Nearby Search).
// Если httpClient == nil, используется клиент с таймаутом cfg.RequestTimeout.
func NewGoogleMapsClient(cfg *config.MapsConfig, httpClient *http.Client, logger *zap.Logger) repository.MapsRepository {
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.DefaultConfig(cfg.RequestTimeout))
	}

	return &client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.RequestTimeout,
		logger:     logger,
	}
}

// Geocode геокодирует адрес или почтовый индекс
func (c *client) Geocode(ctx context.Context, address string) (*domain.GeocodeResponse, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp domain.GeocodeResponse
	if err := c.get(ctx, geocodePath, params, &resp); err != nil {
		return nil, err
	}

	c.logStatus(geocodePath, resp.Status, resp.ErrorMessage)
	c.logger.Debug("Geocode call completed",
		zap.String("status", resp.Status),
		zap.Int("results", len(resp.Results)))

	return &resp, nil
}

// Directions строит маршрут от координаты до координаты или адреса
func (c *client) Directions(ctx context.Context, query domain.DirectionsQuery) (*domain.DirectionsResponse, error) {
	params := url.Values{}
	params.Set("origin", query.Origin.String())
	params.Set("destination", query.DestinationParam())
	params.Set("mode", string(query.Mode))

	var resp domain.DirectionsResponse
	if err := c.get(ctx, directionsPath, params, &resp); err != nil {
		return nil, err
	}

	c.logStatus(directionsPath, resp.Status, resp.ErrorMessage)
	c.logger.Debug("Directions call completed",
		zap.String("mode", string(query.Mode)),
		zap.String("status", resp.Status),
		zap.Int("routes", len(resp.Routes)))

	return &resp, nil
}

// NearbySearch ищет места заданного типа в радиусе от точки
func (c *client) NearbySearch(ctx context.Context, query domain.NearbyQuery) (*domain.NearbySearchResponse, error) {
	params := url.Values{}
	params.Set("location", query.Location.String())
	params.Set("radius", strconv.Itoa(query.RadiusMeters))
	params.Set("type", query.PlaceType)
	if query.Keyword != nil && *query.Keyword != "" {
		params.Set("keyword", *query.Keyword)
	}

	var resp domain.NearbySearchResponse
	if err := c.get(ctx, nearbySearchPath, params, &resp); err != nil {
		return nil, err
	}

	c.logStatus(nearbySearchPath, resp.Status, resp.ErrorMessage)
	c.logger.Debug("Nearby search call completed",
		zap.String("type", query.PlaceType),
		zap.Int("radius", query.RadiusMeters),
		zap.String("status", resp.Status),
		zap.Int("results", len(resp.Results)))

	return &resp, nil
}

// logStatus пишет Warn для статусов, которые означают ошибку запроса или ключа,
// а не пустой результат. Сам ответ возвращается вызывающему без изменений.
func (c *client) logStatus(path, status, message string) {
	switch status {
	case domain.MapsStatusDenied, domain.MapsStatusInvalid, domain.MapsStatusUnknownError:
		c.logger.Warn("Google Maps API rejected request",
			zap.String("path", path),
			zap.String("status", status),
			zap.String("error_message", message))
	}
}

// get выполняет один GET-запрос с собственным таймаутом и декодирует JSON в out
func (c *client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// ключ не попадает в логи
	c.logger.Debug("Calling Google Maps API",
		zap.String("path", path),
		zap.String("query", params.Encode()))

	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("Google Maps API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("google maps API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("Failed to decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
