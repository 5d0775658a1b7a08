package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config represents API service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT"`
	} `yaml:"http"`
	Mongo struct {
		URI      string `yaml:"uri" env:"MONGO_URI"`
		Database string `yaml:"database" env:"MONGO_DATABASE"`
	} `yaml:"mongo"`
	App struct {
		Env string `yaml:"env" env:"APP_ENV"`
	} `yaml:"app"`
	JWT struct {
		Secret           string `yaml:"secret" env:"JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`
}

// Load reads configuration using the shared loader and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Mongo.Database = "chargemap"
	cfg.App.Env = "development"
	cfg.JWT.ExpiresInMinutes = 60
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

	if err := loadInto(cfg); err != nil {
		return nil, err
	}

	if cfg.Mongo.URI == "" {
		return nil, errors.New("config: mongo URI is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// IsProduction reports whether error detail should be hidden from clients.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.App.Env), "production")
}
