package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Cache       CacheConfig
	Catalog     CatalogConfig
	Bestsellers BestsellersConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	UploadDir   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type CacheConfig struct {
	// Bound on the in-process memoization cache; 0 = unbounded.
	MaxEntries int
	// TTL for memoized catalog search responses.
	SearchTTL time.Duration
}

// CatalogConfig configures the book catalog API (search/detail provider).
type CatalogConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// BestsellersConfig configures the bestseller-list API and the local
// freshness window after which bestseller data is re-fetched.
type BestsellersConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	FreshnessTTL time.Duration
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookshelf API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			UploadDir:   getEnv("UPLOAD_DIR", "./static/images"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bookshelf"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		Cache: CacheConfig{
			MaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 1024),
			SearchTTL:  getEnvDuration("CACHE_SEARCH_TTL", time.Hour),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "https://www.googleapis.com/books/v1"),
			APIKey:  getEnv("CATALOG_API_KEY", ""),
			Timeout: getEnvDuration("CATALOG_TIMEOUT", 30*time.Second),
		},
		Bestsellers: BestsellersConfig{
			BaseURL:      getEnv("BESTSELLERS_BASE_URL", "https://api.nytimes.com/svc/books/v3"),
			APIKey:       getEnv("BESTSELLERS_API_KEY", ""),
			Timeout:      getEnvDuration("BESTSELLERS_TIMEOUT", 30*time.Second),
			FreshnessTTL: getEnvDuration("BESTSELLERS_FRESHNESS_TTL", 24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks critical config values
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Bestsellers.APIKey == "" {
			fmt.Println("WARNING: Bestsellers API key not set - featured lists will not refresh")
		}
		if c.Catalog.APIKey == "" {
			fmt.Println("WARNING: Catalog API key not set - book search will not work")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
