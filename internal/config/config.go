package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/inkmatch/inkmatch-server/internal/util"
	"github.com/inkmatch/inkmatch-server/pkg/errors"
	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Storage    StorageConfig
	Geocode    GeocodeConfig
	Classifier ClassifierConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type StorageConfig struct {
	BaseURL   string
	Bucket    string
	AuthToken string
}

type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
}

type ClassifierConfig struct {
	// Strategy selects the classification path: "heuristic" or "model".
	Strategy string
	// PreCheckStyle, when set to a style key, asks the vision model a yes/no
	// question for that single style before running the configured strategy.
	PreCheckStyle string
	ModelTimeout  time.Duration
	CacheTTL      time.Duration
	Concurrency   int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			User:            getEnv("POSTGRES_USER", "inkmatch"),
			Password:        getEnv("POSTGRES_PASSWORD", ""),
			Database:        getEnv("POSTGRES_DB", "inkmatch"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("POSTGRES_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Storage: StorageConfig{
			BaseURL:   getEnv("STORAGE_BASE_URL", ""),
			Bucket:    getEnv("STORAGE_BUCKET", "tattoo-images"),
			AuthToken: getEnv("STORAGE_AUTH_TOKEN", ""),
		},
		Geocode: GeocodeConfig{
			BaseURL:   getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("GEOCODE_USER_AGENT", "inkmatch-server/1.0"),
		},
		Classifier: ClassifierConfig{
			Strategy:      util.Normalize(getEnv("CLASSIFIER_STRATEGY", "heuristic")),
			PreCheckStyle: getEnv("CLASSIFIER_PRECHECK_STYLE", ""),
			ModelTimeout:  time.Duration(getEnvInt("CLASSIFIER_MODEL_TIMEOUT_SECONDS", 20)) * time.Second,
			CacheTTL:      time.Duration(getEnvInt("CLASSIFIER_CACHE_TTL_MINUTES", 60)) * time.Minute,
			Concurrency:   getEnvInt("CLASSIFIER_CONCURRENCY", 4),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewConfigError(fmt.Sprintf("SERVER_PORT must be in range 1-65535, got %d", c.Server.Port), "SERVER_PORT")
	}
	if c.Gemini.APIKey == "" {
		return errors.NewConfigError("GEMINI_API_KEY is required", "GEMINI_API_KEY")
	}
	if c.Classifier.Strategy != "heuristic" && c.Classifier.Strategy != "model" {
		return errors.NewConfigError(fmt.Sprintf("CLASSIFIER_STRATEGY must be \"heuristic\" or \"model\", got %q", c.Classifier.Strategy), "CLASSIFIER_STRATEGY")
	}
	if c.Classifier.Concurrency < 1 {
		return errors.NewConfigError(fmt.Sprintf("CLASSIFIER_CONCURRENCY must be at least 1, got %d", c.Classifier.Concurrency), "CLASSIFIER_CONCURRENCY")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
