package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// JWT
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Lineup building
	SalaryCap      int     `mapstructure:"SALARY_CAP"`
	BuildRateLimit float64 `mapstructure:"BUILD_RATE_LIMIT"` // builds per second per client
	BuildRateBurst int     `mapstructure:"BUILD_RATE_BURST"`

	// Contrarian score weights
	ContrarianRankWeight      float64 `mapstructure:"CONTRARIAN_RANK_WEIGHT"`
	ContrarianOwnershipWeight float64 `mapstructure:"CONTRARIAN_OWNERSHIP_WEIGHT"`
	ContrarianRankCeiling     int     `mapstructure:"CONTRARIAN_RANK_CEILING"`

	// Data refresh
	DataRefreshSchedule string `mapstructure:"DATA_REFRESH_SCHEDULE"`
	EnableScheduler     bool   `mapstructure:"ENABLE_SCHEDULER"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATABASE_URL", "sqlite://contrarian.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "your-secret-key")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("SALARY_CAP", 50000)
	v.SetDefault("BUILD_RATE_LIMIT", 2.0)
	v.SetDefault("BUILD_RATE_BURST", 5)
	v.SetDefault("CONTRARIAN_RANK_WEIGHT", 0.5)
	v.SetDefault("CONTRARIAN_OWNERSHIP_WEIGHT", 0.5)
	v.SetDefault("CONTRARIAN_RANK_CEILING", 50)
	v.SetDefault("DATA_REFRESH_SCHEDULE", "@every 1h")
	v.SetDefault("ENABLE_SCHEDULER", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	// Read from environment
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the classifier and lineup builder cannot run with.
func (c *Config) Validate() error {
	if c.SalaryCap <= 0 {
		return fmt.Errorf("SALARY_CAP must be positive, got %d", c.SalaryCap)
	}
	if c.ContrarianRankWeight < 0 || c.ContrarianOwnershipWeight < 0 {
		return fmt.Errorf("contrarian weights must be non-negative")
	}
	if c.ContrarianRankCeiling < 2 {
		return fmt.Errorf("CONTRARIAN_RANK_CEILING must be at least 2, got %d", c.ContrarianRankCeiling)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
