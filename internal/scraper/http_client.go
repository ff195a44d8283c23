// Package scraper содержит HTTP клиент для загрузки страницы расписания.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"timetable/internal/model"

	"go.uber.org/zap"
)

// userAgent имитирует настольный браузер, сайт отдает урезанную страницу ботам
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client представляет HTTP клиент для загрузки расписания
type Client struct {
	client *http.Client
	retry  RetryConfig
	logger *zap.Logger
}

// NewClient создает новый HTTP клиент
func NewClient(timeout time.Duration, retry RetryConfig, logger *zap.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		retry:  retry,
		logger: logger,
	}
}

// FetchPage загружает страницу по URL с повторными попытками и
// определяет кодировку текста
func (c *Client) FetchPage(ctx context.Context, url string) (*model.RawPage, error) {
	var body []byte
	var contentType string

	err := WithRetry(ctx, c.logger, c.retry, func() error {
		var err error
		body, contentType, err = c.fetchOnce(ctx, url)
		return err
	})
	if err != nil {
		c.logger.Error("All fetch attempts exhausted", zap.String("url", url), zap.Error(err))
		return nil, &FetchError{URL: url, Err: err}
	}

	text, encName, confident := resolveEncoding(contentType, body)
	if !confident {
		c.logger.Warn("Failed to detect page encoding, falling back to UTF-8",
			zap.String("url", url))
	}

	c.logger.Debug("Page fetched",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.String("encoding", encName),
		zap.Bool("confident", confident))

	return &model.RawPage{
		Body:      body,
		Text:      text,
		Encoding:  encName,
		Confident: confident,
	}, nil
}

// fetchOnce выполняет одну попытку загрузки; пустое тело считается неудачей
func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if len(body) == 0 {
		return nil, "", fmt.Errorf("empty response body")
	}

	return body, resp.Header.Get("Content-Type"), nil
}
