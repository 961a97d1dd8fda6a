package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Environment string
	Port        int
	LogLevel    string

	DatabaseDSN     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	RequestTimeout  time.Duration
	CORSAllowOrigin []string

	NATSURL         string
	NATSConnTimeout time.Duration

	OTLPEndpoint string

	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	env := getEnvString("APP_ENV", EnvDevelopment)

	config := &Config{
		Environment: env,
		Port:        getEnvInt("PORT", 3000),
		LogLevel:    getEnvString("LOG_LEVEL", "info"),

		DatabaseDSN:    getEnvString("DATABASE_DSN", "host=localhost user=postgres password=password dbname=jobcatalog port=5432 sslmode=disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLife:  getEnvDuration("DB_CONN_MAX_LIFE", time.Hour),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		OTLPEndpoint: getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		GeminiAPIKey: getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	defaultOrigins := "http://localhost:3000"
	if env == EnvProduction {
		defaultOrigins = "*"
	}
	config.CORSAllowOrigin = splitList(getEnvString("CORS_ALLOWED_ORIGINS", defaultOrigins))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		return fmt.Errorf("database DSN is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowsAllOrigins reports whether CORS is configured with the "*" wildcard.
func (c *Config) AllowsAllOrigins() bool {
	for _, o := range c.CORSAllowOrigin {
		if o == "*" {
			return true
		}
	}
	return false
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
