// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges the environment-specific overlay
// (config.<env>.yaml) and applies environment-variable overrides.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the module root so the
// service behaves the same when started from cmd/ or from tests.
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "discovery-service"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 10000
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}
	if cfg.Discovery.DefaultRadiusKm == 0 {
		cfg.Discovery.DefaultRadiusKm = 5
	}
	if cfg.Discovery.MaxRadiusKm == 0 {
		cfg.Discovery.MaxRadiusKm = 100
	}
	if cfg.Discovery.DefaultLimit == 0 {
		cfg.Discovery.DefaultLimit = 20
	}
	if cfg.Discovery.MaxLimit == 0 {
		cfg.Discovery.MaxLimit = 100
	}
	if cfg.Discovery.TextSearchLimit == 0 {
		cfg.Discovery.TextSearchLimit = 10
	}
	if cfg.Discovery.CacheTTLSeconds == 0 {
		cfg.Discovery.CacheTTLSeconds = 300
	}
	if cfg.Discovery.FeaturedLimit == 0 {
		cfg.Discovery.FeaturedLimit = 10
	}
	if cfg.Registry.Path == "" {
		cfg.Registry.Path = "configs/categories.json"
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 3000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Discovery.DefaultRadiusKm <= 0 || cfg.Discovery.DefaultRadiusKm > cfg.Discovery.MaxRadiusKm {
		return fmt.Errorf("discovery.default_radius_km must be in (0, %v]", cfg.Discovery.MaxRadiusKm)
	}
	if cfg.Discovery.DefaultLimit <= 0 || cfg.Discovery.DefaultLimit > cfg.Discovery.MaxLimit {
		return fmt.Errorf("discovery.default_limit must be in (0, %d]", cfg.Discovery.MaxLimit)
	}
	return nil
}
