// Package scraper содержит загрузку страницы расписания.
package scraper

import (
	"fmt"
	"time"
)

// RetryConfig представляет конфигурацию retry механизма
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию: три попытки
// с паузами в 1 и 2 секунды между ними
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        2,
		InitialDelay:      1 * time.Second,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// FetchError сообщает о невозможности загрузить страницу после всех попыток
type FetchError struct {
	URL string
	Err error
}

// Error реализует интерфейс error
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap возвращает первопричину
func (e *FetchError) Unwrap() error {
	return e.Err
}
