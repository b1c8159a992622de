package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/commute-microservice/internal/pkg/utils"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Maps     MapsConfig
	Mapbox   MapboxConfig
	Report   ReportConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Archive  ArchiveConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type LogConfig struct {
	Level string
}

// MapsConfig - настройки Google Maps (geocode, directions, nearby search)
type MapsConfig struct {
	APIKey              string
	BaseURL             string
	RequestTimeout      time.Duration
	DistanceConcurrency int
	WalkingProvider     string
}

// MapboxConfig - настройки Mapbox как альтернативного источника пешеходных расстояний
type MapboxConfig struct {
	AccessToken     string
	BaseURL         string
	MaxMatrixPoints int
	WalkingProfile  string
	RequestTimeout  int // seconds
}

// ReportConfig - параметры поиска мест вокруг точки отправления
type ReportConfig struct {
	StationRadius int
	SchoolRadius  int
	SchoolKeyword string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type ArchiveConfig struct {
	Enabled bool
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
	ClaimMinIdle      time.Duration
}

const (
	WalkingProviderGoogle = "google"
	WalkingProviderMapbox = "mapbox"
)

// Load читает конфигурацию из .env (если файл есть) и переменных окружения
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// .env отсутствует - работаем только с окружением
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        viper.GetString("API_HOST"),
			Port:        viper.GetInt("API_PORT"),
			Env:         viper.GetString("API_ENV"),
			CORSOrigins: viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Maps: MapsConfig{
			APIKey:              viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:             viper.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout:      time.Duration(viper.GetInt("MAPS_REQUEST_TIMEOUT")) * time.Second,
			DistanceConcurrency: viper.GetInt("MAPS_DISTANCE_CONCURRENCY"),
			WalkingProvider:     strings.ToLower(viper.GetString("MAPS_WALKING_PROVIDER")),
		},
		Mapbox: MapboxConfig{
			AccessToken:     viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:         viper.GetString("MAPBOX_BASE_URL"),
			MaxMatrixPoints: viper.GetInt("MAPBOX_MAX_MATRIX_POINTS"),
			WalkingProfile:  viper.GetString("MAPBOX_WALKING_PROFILE"),
			RequestTimeout:  viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Report: ReportConfig{
			StationRadius: viper.GetInt("REPORT_STATION_RADIUS"),
			SchoolRadius:  viper.GetInt("REPORT_SCHOOL_RADIUS"),
			SchoolKeyword: viper.GetString("REPORT_SCHOOL_KEYWORD"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Archive: ArchiveConfig{
			Enabled: viper.GetBool("ARCHIVE_ENABLED"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         viper.GetInt("WORKER_BATCH_SIZE"),
			ClaimMinIdle:      time.Duration(viper.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Second,
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults заполняет незаданные значения
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "*"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Maps.BaseURL == "" {
		c.Maps.BaseURL = "https://maps.googleapis.com"
	}
	if c.Maps.RequestTimeout == 0 {
		c.Maps.RequestTimeout = 10 * time.Second
	}
	if c.Maps.DistanceConcurrency <= 0 {
		c.Maps.DistanceConcurrency = 4
	}
	if c.Maps.WalkingProvider == "" {
		c.Maps.WalkingProvider = WalkingProviderGoogle
	}

	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.MaxMatrixPoints == 0 {
		c.Mapbox.MaxMatrixPoints = 25
	}
	if c.Mapbox.WalkingProfile == "" {
		c.Mapbox.WalkingProfile = "mapbox/walking"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = int(c.Maps.RequestTimeout / time.Second)
	}

	if c.Report.StationRadius == 0 {
		c.Report.StationRadius = 3000
	}
	if c.Report.SchoolRadius == 0 {
		c.Report.SchoolRadius = 1000
	}
	if c.Report.SchoolKeyword == "" {
		c.Report.SchoolKeyword = "primary"
	}

	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 2
	}

	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "commute-report-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 10
	}
	if c.Worker.ClaimMinIdle == 0 {
		c.Worker.ClaimMinIdle = 60 * time.Second
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Maps.APIKey == "" {
		return errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	switch c.Maps.WalkingProvider {
	case WalkingProviderGoogle:
	case WalkingProviderMapbox:
		if c.Mapbox.AccessToken == "" {
			return errors.New("MAPBOX_ACCESS_TOKEN is required when MAPS_WALKING_PROVIDER=mapbox")
		}
	default:
		return fmt.Errorf("unknown MAPS_WALKING_PROVIDER %q", c.Maps.WalkingProvider)
	}
	if !utils.ValidateRadiusMeters(c.Report.StationRadius) {
		return fmt.Errorf("REPORT_STATION_RADIUS out of range: %d", c.Report.StationRadius)
	}
	if !utils.ValidateRadiusMeters(c.Report.SchoolRadius) {
		return fmt.Errorf("REPORT_SCHOOL_RADIUS out of range: %d", c.Report.SchoolRadius)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
