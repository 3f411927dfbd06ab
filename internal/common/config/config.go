// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Registry  RegistryConfig  `mapstructure:"registry"`
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings. MetricsPort serves the
// Prometheus endpoint and pprof separately from the API.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	MetricsPort    int `mapstructure:"metrics_port"`
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DiscoveryConfig holds the tunables of the discovery facade. Defaults match
// the public contract: radius 5 km, page size 20, text-search limit 10.
type DiscoveryConfig struct {
	DefaultRadiusKm float64 `mapstructure:"default_radius_km"`
	MaxRadiusKm     float64 `mapstructure:"max_radius_km"`
	DefaultLimit    int     `mapstructure:"default_limit"`
	MaxLimit        int     `mapstructure:"max_limit"`
	TextSearchLimit int     `mapstructure:"text_search_limit"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
	FeaturedLimit   int     `mapstructure:"featured_limit"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type GeocoderConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
