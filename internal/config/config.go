package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported values for SEARCH_ENGINE.
const (
	EngineOpenSearch    = "opensearch"
	EngineElasticsearch = "elasticsearch"
	EngineMemory        = "memory"
)

// SearchConfig holds connection settings for the backing search engine.
// Fields are read with the OPENSEARCH_ prefix (OPENSEARCH_HOST, OPENSEARCH_USERNAME, ...).
type SearchConfig struct {
	Host           string        `env:"HOST" envDefault:"http://localhost:9200"`
	Username       string        `env:"USERNAME"`
	Password       string        `env:"PASSWORD"`
	Index          string        `env:"INDEX" envDefault:"cars"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	// Refresh is passed to index/delete calls when set ("true", "false", "wait_for").
	Refresh string `env:"REFRESH"`
	// AutoCreateIndex creates the index on first write when it is missing.
	AutoCreateIndex bool `env:"AUTO_CREATE_INDEX" envDefault:"true"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppHost  string `env:"APP_HOST" envDefault:"localhost:8080"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SearchEngine selects the gateway implementation.
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"opensearch"`
	// ExposeEngineErrors passes engine/transport error messages through to API clients.
	ExposeEngineErrors bool `env:"EXPOSE_ENGINE_ERRORS" envDefault:"true"`

	Search SearchConfig `envPrefix:"OPENSEARCH_"`
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *AppConfig) validate() error {
	switch c.SearchEngine {
	case EngineOpenSearch, EngineElasticsearch, EngineMemory:
	default:
		return fmt.Errorf("invalid SEARCH_ENGINE %q: must be one of %s, %s, %s",
			c.SearchEngine, EngineOpenSearch, EngineElasticsearch, EngineMemory)
	}
	if c.SearchEngine != EngineMemory && c.Search.Host == "" {
		return fmt.Errorf("OPENSEARCH_HOST is required")
	}
	if strings.TrimSpace(c.Search.Index) == "" {
		return fmt.Errorf("OPENSEARCH_INDEX must not be empty")
	}
	if c.Search.ConnectTimeout <= 0 || c.Search.RequestTimeout <= 0 {
		return fmt.Errorf("search timeouts must be positive")
	}
	return nil
}
