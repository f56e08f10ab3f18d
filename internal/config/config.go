package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Version  string `mapstructure:"APP_VERSION"`

	MemgraphURI      string `mapstructure:"MEMGRAPH_URI"`
	MemgraphUser     string `mapstructure:"MEMGRAPH_USER"`
	MemgraphPassword string `mapstructure:"MEMGRAPH_PASSWORD"`
	MemgraphDatabase string `mapstructure:"MEMGRAPH_DATABASE"`

	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     int    `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CacheEnabled    bool `mapstructure:"CACHE_ENABLED"`
	CacheCountTTL   int  `mapstructure:"CACHE_TTL_COUNT_ENDPOINTS"`
	CacheSummaryTTL int  `mapstructure:"CACHE_TTL_SUMMARY_ENDPOINTS"`

	DefaultPageSize int `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int `mapstructure:"MAX_PAGE_SIZE"`

	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	RateLimitEnabled  bool `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRequests int  `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   int  `mapstructure:"RATE_LIMIT_WINDOW"`

	RequestTimeout int `mapstructure:"REQUEST_TIMEOUT"`

	ShareLineLevelData bool `mapstructure:"SHARE_LINE_LEVEL_DATA"`

	OrganizationName string `mapstructure:"ORGANIZATION_NAME"`
	ServerName       string `mapstructure:"SERVER_NAME"`
	ContactEmail     string `mapstructure:"CONTACT_EMAIL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_VERSION", "v1.2.0")
	v.SetDefault("MEMGRAPH_URI", "bolt://localhost:7687")
	v.SetDefault("MEMGRAPH_DATABASE", "memgraph")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL_COUNT_ENDPOINTS", 1800)
	v.SetDefault("CACHE_TTL_SUMMARY_ENDPOINTS", 900)
	v.SetDefault("DEFAULT_PAGE_SIZE", 100)
	v.SetDefault("MAX_PAGE_SIZE", 1000)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", 60)
	v.SetDefault("REQUEST_TIMEOUT", 30)
	v.SetDefault("SHARE_LINE_LEVEL_DATA", true)
	v.SetDefault("ORGANIZATION_NAME", "Example Organization")
	v.SetDefault("SERVER_NAME", "Example CCDI Federation Node")
	v.SetDefault("CONTACT_EMAIL", "support@example.com")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("APP_VERSION")
	v.BindEnv("MEMGRAPH_URI")
	v.BindEnv("MEMGRAPH_USER")
	v.BindEnv("MEMGRAPH_PASSWORD")
	v.BindEnv("MEMGRAPH_DATABASE")
	v.BindEnv("REDIS_HOST")
	v.BindEnv("REDIS_PORT")
	v.BindEnv("REDIS_PASSWORD")
	v.BindEnv("REDIS_DB")
	v.BindEnv("CACHE_ENABLED")
	v.BindEnv("CACHE_TTL_COUNT_ENDPOINTS")
	v.BindEnv("CACHE_TTL_SUMMARY_ENDPOINTS")
	v.BindEnv("DEFAULT_PAGE_SIZE")
	v.BindEnv("MAX_PAGE_SIZE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_ENABLED")
	v.BindEnv("RATE_LIMIT_REQUESTS")
	v.BindEnv("RATE_LIMIT_WINDOW")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("SHARE_LINE_LEVEL_DATA")
	v.BindEnv("ORGANIZATION_NAME")
	v.BindEnv("SERVER_NAME")
	v.BindEnv("CONTACT_EMAIL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.MemgraphURI == "" {
		return nil, fmt.Errorf("MEMGRAPH_URI is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) CountTTL() time.Duration {
	return time.Duration(c.CacheCountTTL) * time.Second
}

func (c *Config) SummaryTTL() time.Duration {
	return time.Duration(c.CacheSummaryTTL) * time.Second
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c *Config) RateLimitWindowDuration() time.Duration {
	return time.Duration(c.RateLimitWindow) * time.Second
}

// Validate checks that the configuration is coherent enough to serve with.
// Pagination bounds and timing knobs must be positive, and the page size
// default cannot exceed the page size ceiling.
func (c *Config) Validate() error {
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be >= 1, got %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("MAX_PAGE_SIZE (%d) must be >= DEFAULT_PAGE_SIZE (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.RequestTimeout < 1 {
		return fmt.Errorf("REQUEST_TIMEOUT must be >= 1 second, got %d", c.RequestTimeout)
	}
	if c.CacheEnabled {
		if c.CacheCountTTL < 1 {
			return fmt.Errorf("CACHE_TTL_COUNT_ENDPOINTS must be >= 1 second, got %d", c.CacheCountTTL)
		}
		if c.CacheSummaryTTL < 1 {
			return fmt.Errorf("CACHE_TTL_SUMMARY_ENDPOINTS must be >= 1 second, got %d", c.CacheSummaryTTL)
		}
	}
	if c.RateLimitEnabled {
		if c.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be >= 1, got %d", c.RateLimitRequests)
		}
		if c.RateLimitWindow < 1 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be >= 1 second, got %d", c.RateLimitWindow)
		}
	}
	return nil
}
