// Package extract содержит выбор таблицы расписания среди таблиц страницы.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// scheduleKeywords основы слов, по которым узнается заголовок или текст
// расписания
var scheduleKeywords = []string{"расписание", "расписани", "занятия", "пары", "уроки"}

// headingTags элементы, в которых ожидается заголовок перед таблицей
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"div": true, "p": true, "strong": true,
}

// minTableRows заголовок плюс хотя бы две строки данных
const minTableRows = 3

var (
	bareNumberPattern   = regexp.MustCompile(`^\d+$`)
	numberPrefixPattern = regexp.MustCompile(`^\d+\D+$`)
)

// Семейства ключевых слов смысловых колонок для оценки заголовка таблицы
var headerFamilies = []struct {
	name     string
	keywords []string
	points   int
}{
	{"group", []string{"группа", "класс"}, 10},
	{"subject", []string{"предмет", "дисциплина"}, 10},
	{"teacher", []string{"преподаватель", "препод"}, 10},
	{"classroom", []string{"аудитория", "кабинет", "каб"}, 10},
	{"lesson", []string{"пара", "урок", "время"}, 10},
	{"date", []string{"дата", "день"}, 5},
}

// SelectTable выбирает среди таблиц документа ту, что скорее всего
// содержит расписание. Возвращает nil, если подходящей таблицы нет:
// для вызывающего это "расписание не найдено", а не ошибка разбора.
func SelectTable(doc *goquery.Document, logger *zap.Logger) *goquery.Selection {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil
	}

	// Единственная таблица на странице не требует эвристик
	if tables.Length() == 1 {
		logger.Info("Single table on page, using it")
		return tables.First()
	}

	logger.Info("Multiple tables on page, selecting best candidate",
		zap.Int("tables", tables.Length()))

	// Таблицы внутри основного контентного блока надежнее остальных
	if content := doc.Find("div.item-page"); content.Length() > 0 {
		contentTables := content.Find("table")
		if contentTables.Length() == 1 {
			logger.Info("Single table inside main content block, using it")
			return contentTables.First()
		}
		if contentTables.Length() > 1 {
			tables = contentTables
		}
	}

	// Таблица с заголовком о расписании прямо перед ней побеждает без оценки
	var withHeading *goquery.Selection
	tables.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if heading := precedingHeadingText(table); heading != "" {
			lower := strings.ToLower(heading)
			for _, keyword := range scheduleKeywords {
				if strings.Contains(lower, keyword) {
					withHeading = table
					return false
				}
			}
		}
		return true
	})
	if withHeading != nil {
		logger.Info("Table selected by preceding schedule heading")
		return withHeading
	}

	// Иначе оцениваем каждую таблицу по структуре и содержимому
	var best *goquery.Selection
	bestScore := 0
	bestRows := 0

	tables.Each(func(_ int, table *goquery.Selection) {
		rowCount := table.Find("tr").Length()
		if rowCount < minTableRows {
			return
		}

		score, rationale := scoreTable(table)
		logger.Debug("Table candidate scored",
			zap.Int("rows", rowCount),
			zap.Int("score", score),
			zap.Strings("rationale", rationale))

		if score > bestScore || (score == bestScore && rowCount > bestRows) {
			best = table
			bestScore = score
			bestRows = rowCount
		}
	})

	if best == nil {
		logger.Warn("No table candidate reached the row floor")
		return nil
	}

	logger.Info("Table selected by score",
		zap.Int("score", bestScore),
		zap.Int("rows", bestRows))
	return best
}

// scoreTable оценивает одну таблицу-кандидата и объясняет оценку.
// Вынесена отдельно, чтобы решение можно было проверять без обхода HTML.
func scoreTable(table *goquery.Selection) (int, []string) {
	score := 0
	var rationale []string

	rowCount := table.Find("tr").Length()
	rowScore := rowCount
	if rowScore > 20 {
		rowScore = 20
	}
	score += rowScore
	rationale = append(rationale, fmt.Sprintf("rows=%d(+%d)", rowCount, rowScore))

	headerRow := table.Find("tr").First()
	headerCells := headerRow.Find("th")
	if headerCells.Length() == 0 {
		headerCells = headerRow.Find("td")
	}

	if headerCells.Length() >= 4 {
		score += 5
		rationale = append(rationale, "wide-header(+5)")

		headerTexts := make([]string, 0, headerCells.Length())
		headerCells.Each(func(_ int, cell *goquery.Selection) {
			headerTexts = append(headerTexts, strings.ToLower(cell.Text()))
		})

		for _, family := range headerFamilies {
			if headerMatchesFamily(headerTexts, family.keywords) {
				score += family.points
				rationale = append(rationale, fmt.Sprintf("header-%s(+%d)", family.name, family.points))
			}
		}
	}

	numericCells := 0
	table.Find("td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		if bareNumberPattern.MatchString(text) || numberPrefixPattern.MatchString(text) {
			numericCells++
		}
	})
	if numericCells > 0 {
		numericScore := numericCells
		if numericScore > 10 {
			numericScore = 10
		}
		score += numericScore
		rationale = append(rationale, fmt.Sprintf("numeric-cells=%d(+%d)", numericCells, numericScore))
	}

	flattened := strings.ToLower(table.Text())
	for _, keyword := range scheduleKeywords {
		if strings.Contains(flattened, keyword) {
			score += 5
			rationale = append(rationale, fmt.Sprintf("keyword-%s(+5)", keyword))
		}
	}

	return score, rationale
}

// headerMatchesFamily проверяет, встречается ли семейство ключевых слов
// хотя бы в одной ячейке заголовка
func headerMatchesFamily(headerTexts, keywords []string) bool {
	for _, text := range headerTexts {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				return true
			}
		}
	}
	return false
}

// precedingHeadingText возвращает текст ближайшего непустого элемента
// перед таблицей, если он похож на заголовок
func precedingHeadingText(table *goquery.Selection) string {
	nodes := table.Nodes
	if len(nodes) == 0 {
		return ""
	}

	for node := nodes[0].PrevSibling; node != nil; node = node.PrevSibling {
		switch node.Type {
		case html.TextNode:
			if strings.TrimSpace(node.Data) != "" {
				// Таблице предшествует обычный текст, а не заголовок
				return ""
			}
		case html.ElementNode:
			if headingTags[node.Data] {
				return strings.TrimSpace(nodeText(node))
			}
			return ""
		}
	}

	return ""
}

// nodeText собирает текст узла и его потомков
func nodeText(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}
