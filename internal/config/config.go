package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Log      LogConfig
	OpenData OpenDataConfig
	Geocode  GeocodeConfig
	Map      MapConfig
	Session  SessionConfig
	Warmup   WarmupConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
	// MetricsEnabled - отдавать /metrics для Prometheus
	MetricsEnabled bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// OpenDataConfig - адреса датасетов городского портала открытых данных
type OpenDataConfig struct {
	ParksURL              string
	TrailClosuresURL      string
	TrafficDisruptionsURL string
	NeighbourhoodsURL     string
	AppToken              string
	// RequestTimeout - 0 означает отсутствие таймаута
	RequestTimeout  time.Duration
	ParksLimit      int
	TrailLimit      int
	TrafficStatuses []string
}

// GeocodeConfig - настройки обратного геокодирования по границам районов
type GeocodeConfig struct {
	SearchRadiusMeters int
	GeometryColumns    []string
	MaxPerCycle        int
	CacheBackend       string
	RetryFailed        bool
}

// MapConfig - адреса встраиваемых карт для режима "map"
type MapConfig struct {
	TrailEmbedURL   string
	TrafficEmbedURL string
}

type SessionConfig struct {
	MaxSessions int
}

// WarmupConfig - фоновое заполнение кеша районов
type WarmupConfig struct {
	Enabled  bool
	Interval time.Duration
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env необязателен, переменные окружения имеют приоритет
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins:    v.GetString("API_CORS_ORIGINS"),
			MetricsEnabled: v.GetBool("API_METRICS_ENABLED"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		OpenData: OpenDataConfig{
			ParksURL:              v.GetString("OPENDATA_PARKS_URL"),
			TrailClosuresURL:      v.GetString("OPENDATA_TRAIL_CLOSURES_URL"),
			TrafficDisruptionsURL: v.GetString("OPENDATA_TRAFFIC_DISRUPTIONS_URL"),
			NeighbourhoodsURL:     v.GetString("OPENDATA_NEIGHBOURHOODS_URL"),
			AppToken:              v.GetString("OPENDATA_APP_TOKEN"),
			RequestTimeout:        time.Duration(v.GetInt("OPENDATA_REQUEST_TIMEOUT")) * time.Second,
			ParksLimit:            v.GetInt("OPENDATA_PARKS_LIMIT"),
			TrailLimit:            v.GetInt("OPENDATA_TRAIL_LIMIT"),
			TrafficStatuses:       parseList(v.GetString("OPENDATA_TRAFFIC_STATUSES")),
		},
		Geocode: GeocodeConfig{
			SearchRadiusMeters: v.GetInt("GEOCODE_SEARCH_RADIUS"),
			GeometryColumns:    parseList(v.GetString("GEOCODE_GEOMETRY_COLUMNS")),
			MaxPerCycle:        v.GetInt("GEOCODE_MAX_PER_CYCLE"),
			CacheBackend:       strings.ToLower(v.GetString("GEOCODE_CACHE_BACKEND")),
			RetryFailed:        v.GetBool("GEOCODE_RETRY_FAILED"),
		},
		Map: MapConfig{
			TrailEmbedURL:   v.GetString("MAP_TRAIL_EMBED_URL"),
			TrafficEmbedURL: v.GetString("MAP_TRAFFIC_EMBED_URL"),
		},
		Session: SessionConfig{
			MaxSessions: v.GetInt("SESSION_MAX"),
		},
		Warmup: WarmupConfig{
			Enabled:  v.GetBool("WARMUP_ENABLED"),
			Interval: time.Duration(v.GetInt("WARMUP_INTERVAL")) * time.Second,
		},
	}

	applyDefaults(cfg)
	return cfg
}

// Set default values if not provided
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.CORSOrigins == "" {
		cfg.Server.CORSOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	od := &cfg.OpenData
	if od.ParksURL == "" {
		od.ParksURL = "https://data.edmonton.ca/resource/gdd9-eqv9.json"
	}
	if od.TrailClosuresURL == "" {
		od.TrailClosuresURL = "https://data.edmonton.ca/resource/k4mi-dkvi.json"
	}
	if od.TrafficDisruptionsURL == "" {
		od.TrafficDisruptionsURL = "https://data.edmonton.ca/resource/k4tx-5k8p.json"
	}
	if od.NeighbourhoodsURL == "" {
		od.NeighbourhoodsURL = "https://data.edmonton.ca/resource/65fr-66s6.json"
	}
	if od.ParksLimit == 0 {
		od.ParksLimit = 1000
	}
	if od.TrailLimit == 0 {
		od.TrailLimit = 500
	}
	if len(od.TrafficStatuses) == 0 {
		od.TrafficStatuses = []string{"Current", "REVISED"}
	}

	gc := &cfg.Geocode
	if gc.SearchRadiusMeters == 0 {
		gc.SearchRadiusMeters = 50
	}
	if len(gc.GeometryColumns) == 0 {
		gc.GeometryColumns = []string{"the_geom", "geometry_multipolygon"}
	}
	if gc.MaxPerCycle == 0 {
		gc.MaxPerCycle = 40
	}
	if gc.CacheBackend == "" {
		gc.CacheBackend = CacheBackendMemory
	}

	if cfg.Map.TrailEmbedURL == "" {
		cfg.Map.TrailEmbedURL = "https://data.edmonton.ca/dataset/Trail-Closures/k4mi-dkvi/embed?width=100%25&height=600"
	}
	if cfg.Map.TrafficEmbedURL == "" {
		cfg.Map.TrafficEmbedURL = "https://data.edmonton.ca/dataset/Traffic-Disruptions/k4tx-5k8p/embed?width=100%25&height=600"
	}

	if cfg.Session.MaxSessions == 0 {
		cfg.Session.MaxSessions = 1000
	}
	if cfg.Warmup.Interval == 0 {
		cfg.Warmup.Interval = 10 * time.Minute
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
