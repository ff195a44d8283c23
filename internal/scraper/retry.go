// Package scraper содержит повторные попытки загрузки страницы.
package scraper

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// WithRetry повторяет загрузку с экспоненциально растущими паузами.
// Сайт колледжа периодически отвечает 5xx под нагрузкой, поэтому
// сетевые сбои здесь считаются временными. Отмена контекста
// прерывает и паузу, и следующую попытку.
func WithRetry(ctx context.Context, logger *zap.Logger, config RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 0 {
				logger.Debug("Fetch succeeded after retry",
					zap.Int("attempt", attempt+1),
					zap.Int("max_retries", config.MaxRetries))
			}
			return nil
		}

		lastErr = err

		if attempt == config.MaxRetries {
			break
		}

		delay := time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffMultiplier, float64(attempt)))
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}

		logger.Debug("Fetch attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", config.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("fetch failed after %d attempts: %w", config.MaxRetries+1, lastErr)
}
