// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultScheduleURL адрес страницы текущего расписания на сайте колледжа
const defaultScheduleURL = "https://bartc.by/index.php/obuchayushchemusya/dnevnoe-otdelenie/tekushchee-raspisanie"

// Config представляет конфигурацию приложения
type Config struct {
	// Database
	DatabaseURL string

	// Источник расписания
	ScheduleURL string

	// HTTP Client
	HTTPTimeout time.Duration

	// Retry
	RetryConfig RetryConfig

	// Logging
	LogLevel string

	// App Data Directory
	AppDataDir string

	// Диагностический дамп HTML
	HTMLDumpEnabled bool
}

// RetryConfig представляет конфигурацию retry механизма
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL: getEnv("DB_DSN", ""),
		ScheduleURL: getEnv("SCHEDULE_URL", defaultScheduleURL),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 60*time.Second),
		RetryConfig: RetryConfig{
			MaxRetries:        getEnvInt("FETCH_MAX_RETRIES", 2),
			InitialDelay:      getEnvDuration("FETCH_INITIAL_DELAY", 1*time.Second),
			MaxDelay:          getEnvDuration("FETCH_MAX_DELAY", 30*time.Second),
			BackoffMultiplier: getEnvFloat("FETCH_BACKOFF_MULTIPLIER", 2.0),
		},
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AppDataDir:      getEnv("APP_DATA_DIR", "./data"),
		HTMLDumpEnabled: getEnvBool("HTML_DUMP_ENABLED", true),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.ScheduleURL == "" {
		return fmt.Errorf("SCHEDULE_URL is required")
	}

	if _, err := url.ParseRequestURI(c.ScheduleURL); err != nil {
		return fmt.Errorf("SCHEDULE_URL is not a valid URL: %w", err)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}

	if c.RetryConfig.MaxRetries < 0 {
		return fmt.Errorf("FETCH_MAX_RETRIES must not be negative")
	}

	if c.RetryConfig.InitialDelay <= 0 {
		return fmt.Errorf("FETCH_INITIAL_DELAY must be positive")
	}

	if c.RetryConfig.BackoffMultiplier < 1 {
		return fmt.Errorf("FETCH_BACKOFF_MULTIPLIER must be at least 1")
	}

	return nil
}

// getEnv получает строковую переменную окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленную переменную окружения или значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat получает вещественную переменную окружения или значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool получает булеву переменную окружения или значение по умолчанию
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения с длительностью или значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
