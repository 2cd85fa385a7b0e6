package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port            int
	MaxPrincipal    float64
	MaxMonths       int
	MaxRate         float64
	MaxContribution float64
	MaxBalanceCap   float64
	SolverMethod    string
	SolverStep      float64
	SolverCeiling   float64
	SolverTolerance float64
	RedisAddr       string
	CacheTTL        time.Duration
	CacheMaxEntries int
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
	LogFormat       string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MaxPrincipal:    getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxMonths:       getEnvInt("MAX_MONTHS", 600),
		MaxRate:         getEnvFloat("MAX_RATE", 100),
		MaxContribution: getEnvFloat("MAX_CONTRIBUTION", 1e8),
		MaxBalanceCap:   getEnvFloat("MAX_BALANCE_CAP", 1e12),
		SolverMethod:    getEnvString("SOLVER_METHOD", "bisection"),
		SolverStep:      getEnvFloat("SOLVER_STEP", 0.0001),
		SolverCeiling:   getEnvFloat("SOLVER_CEILING", 0.2),
		SolverTolerance: getEnvFloat("SOLVER_TOLERANCE", 0.01),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 10000),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "mcp-parcelado-server"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:       getEnvString("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// BalanceCap возвращает максимальный баланс для защиты от переполнения
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
