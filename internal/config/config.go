package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Sources  SourcesConfig
	Render   RenderConfig
	Overlay  OverlayConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
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

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SnapshotTTL time.Duration
}

type SourcesConfig struct {
	// Путь к YAML-каталогу источников карт
	CatalogPath string
}

type RenderConfig struct {
	// Базовый URL тайлового бэкенда (движок рендера)
	BackendURL string
	// Базовый URL бэкенда рендера оверлеев (geojson слой)
	OverlayBackendURL string
	RequestTimeout    time.Duration
}

type OverlayConfig struct {
	// Оверлеи выключены, если оба allow-списка пусты
	HTTPSDomains []string
	HTTPDomains  []string

	// Путь запроса геоданных на домене источника
	LoaderPath     string
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
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
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SnapshotTTL: time.Duration(viper.GetInt("SNAPSHOT_CACHE_TTL")) * time.Second,
		},
		Sources: SourcesConfig{
			CatalogPath: viper.GetString("SOURCES_CATALOG"),
		},
		Render: RenderConfig{
			BackendURL:        viper.GetString("RENDER_BACKEND_URL"),
			OverlayBackendURL: viper.GetString("RENDER_OVERLAY_BACKEND_URL"),
			RequestTimeout:    time.Duration(viper.GetInt("RENDER_REQUEST_TIMEOUT")) * time.Second,
		},
		Overlay: OverlayConfig{
			HTTPSDomains:   parseDomainList(viper.GetString("OVERLAY_HTTPS_DOMAINS")),
			HTTPDomains:    parseDomainList(viper.GetString("OVERLAY_HTTP_DOMAINS")),
			LoaderPath:     viper.GetString("OVERLAY_LOADER_PATH"),
			RequestTimeout: time.Duration(viper.GetInt("OVERLAY_REQUEST_TIMEOUT")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Sources.CatalogPath == "" {
		cfg.Sources.CatalogPath = "sources.yaml"
	}
	if cfg.Cache.SnapshotTTL == 0 {
		cfg.Cache.SnapshotTTL = 5 * time.Minute
	}
	if cfg.Render.RequestTimeout == 0 {
		cfg.Render.RequestTimeout = 30 * time.Second
	}
	if cfg.Overlay.RequestTimeout == 0 {
		cfg.Overlay.RequestTimeout = 15 * time.Second
	}
	if cfg.Overlay.LoaderPath == "" {
		cfg.Overlay.LoaderPath = "/w/api.php"
	}

	return cfg, nil
}

// OverlaysEnabled - оверлеи настроены, если есть хотя бы один allow-список
func (c *Config) OverlaysEnabled() bool {
	return len(c.Overlay.HTTPSDomains) > 0 || len(c.Overlay.HTTPDomains) > 0
}

func parseDomainList(s string) []string {
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
