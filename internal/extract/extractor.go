// Package extract содержит пайплайн извлечения расписания со страницы.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timetable/internal/model"
	"timetable/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// dumpFileName фиксированное имя диагностической копии загруженного HTML
const dumpFileName = "last_fetch.html"

// Extractor связывает загрузку страницы и эвристики разбора в один проход
type Extractor struct {
	client  *scraper.Client
	dumpDir string
	logger  *zap.Logger
}

// NewExtractor создает новый экстрактор. Пустой dumpDir отключает
// диагностический дамп HTML.
func NewExtractor(client *scraper.Client, dumpDir string, logger *zap.Logger) *Extractor {
	return &Extractor{
		client:  client,
		dumpDir: dumpDir,
		logger:  logger,
	}
}

// Extract загружает страницу и извлекает кандидаты записей расписания.
// Любой исход без данных выражается типизированной ошибкой: пустой
// список с nil-ошибкой не возвращается никогда.
func (e *Extractor) Extract(ctx context.Context, url string) ([]model.Candidate, error) {
	e.logger.Info("Loading schedule", zap.String("url", url))

	page, err := e.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	e.dumpHTML(page.Body)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if err := checkPageUsable(doc); err != nil {
		return nil, err
	}

	table := SelectTable(doc, e.logger)
	if table == nil {
		return nil, ErrNoTableFound
	}

	// Таблица из одного лишь заголовка бесполезна; более строгий порог
	// строк применяется только при выборе среди нескольких таблиц
	if table.Find("tr").Length() <= 1 {
		return nil, ErrNoTableFound
	}

	date := e.findHeadingDate(table)

	header, dataRows := tableCells(table)

	columns := InferColumns(header)
	if len(columns) == 0 {
		e.logger.Warn("Header-based column inference failed, analyzing row content")
		columns = InferColumnsFromContent(dataRows, e.logger)
	}

	e.logger.Info("Table structure detected", zap.Any("columns", columns))

	if !columns.Viable() {
		return nil, ErrInsufficientColumns
	}

	candidates := NewRowExtractor(e.logger).ExtractRows(dataRows, columns, date)
	if len(candidates) == 0 {
		return nil, ErrNoRecordsExtracted
	}

	e.logger.Info("Schedule extracted", zap.Int("records", len(candidates)))
	return candidates, nil
}

// checkPageUsable распознает страницу ошибки и форму входа вместо расписания
func checkPageUsable(doc *goquery.Document) error {
	if doc.Find("input[type='password']").Length() > 0 ||
		doc.Find("form[action*='login']").Length() > 0 {
		return ErrAuthRequired
	}

	if errNode := doc.Find("div.error, div.message").First(); errNode.Length() > 0 {
		if text := strings.TrimSpace(errNode.Text()); text != "" {
			return fmt.Errorf("site returned an error page: %s", text)
		}
	}

	return nil
}

// findHeadingDate ищет дату в заголовках перед таблицей: сайт публикует
// "Расписание на 22 мая" над таблицей. Без заголовка берется сегодняшний день.
func (e *Extractor) findHeadingDate(table *goquery.Selection) time.Time {
	// Календарная дата по локальным часам: усечение абсолютного времени
	// дало бы вчерашний день восточнее UTC
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	nodes := table.Nodes
	if len(nodes) == 0 {
		return today
	}

	for node := nodes[0].PrevSibling; node != nil; node = node.PrevSibling {
		if node.Type != html.ElementNode {
			continue
		}
		switch node.Data {
		case "h3", "h2", "strong", "p":
			text := strings.TrimSpace(nodeText(node))
			if text == "" {
				continue
			}
			if date, ok := ResolveDate(text); ok {
				e.logger.Info("Date heading found before table",
					zap.String("text", text),
					zap.Time("date", date))
				return date
			}
		}
	}

	e.logger.Info("No date heading before table, using current date",
		zap.Time("date", today))
	return today
}

// tableCells разбирает таблицу на тексты ячеек: заголовок отдельно,
// строки данных отдельно
func tableCells(table *goquery.Selection) (header []string, dataRows [][]string) {
	rows := table.Find("tr")

	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			cells := row.Find("th")
			if cells.Length() == 0 {
				cells = row.Find("td")
			}
			cells.Each(func(_ int, cell *goquery.Selection) {
				header = append(header, strings.TrimSpace(cell.Text()))
			})
			return
		}

		var cells []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		dataRows = append(dataRows, cells)
	})

	return header, dataRows
}

// dumpHTML сохраняет сырой HTML в файл для офлайн-диагностики.
// Ошибка записи не прерывает извлечение.
func (e *Extractor) dumpHTML(body []byte) {
	if e.dumpDir == "" {
		return
	}

	if err := os.MkdirAll(e.dumpDir, 0755); err != nil {
		e.logger.Warn("Failed to create dump directory", zap.Error(err))
		return
	}

	path := filepath.Join(e.dumpDir, dumpFileName)
	if err := os.WriteFile(path, body, 0644); err != nil {
		e.logger.Warn("Failed to write HTML dump", zap.String("path", path), zap.Error(err))
		return
	}

	e.logger.Debug("HTML dump written", zap.String("path", path))
}
