package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the service configuration loaded from a YAML profile.
type Config struct {
	BackendURL   string        `mapstructure:"backend_url" validate:"required"`
	BackendToken string        `mapstructure:"backend_token"`
	TenantID     string        `mapstructure:"tenant_id"`
	DBPath       string        `mapstructure:"db_path"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

func Load(profilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "groona-insights.db"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Minute
	}
	return &cfg, nil
}
