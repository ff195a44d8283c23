// Package scraper содержит определение кодировки загруженной страницы.
package scraper

import (
	"mime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// encodingCandidate описывает кодировку из списка перебора
type encodingCandidate struct {
	name string
	enc  encoding.Encoding
}

// Кандидаты перебираются в порядке убывания вероятности для сайта колледжа
var encodingCandidates = []encodingCandidate{
	{"utf-8", unicode.UTF8},
	{"windows-1251", charmap.Windows1251},
	{"iso-8859-5", charmap.ISO8859_5},
	{"koi8-r", charmap.KOI8R},
}

// Ключевые слова предметной области, по которым распознается осмысленно
// декодированная страница расписания
var domainKeywords = []string{"расписание", "группа", "преподаватель", "аудитория"}

// resolveEncoding восстанавливает текст страницы из байтов.
// Порядок: кодировка из заголовка Content-Type, затем перебор кандидатов
// с проверкой на русский текст и ключевые слова, затем UTF-8 как
// низкоуверенный запасной вариант.
func resolveEncoding(contentType string, body []byte) (text, encName string, confident bool) {
	if name := charsetFromContentType(contentType); name != "" {
		if enc, err := htmlindex.Get(name); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
				return string(decoded), name, true
			}
		}
	}

	for _, candidate := range encodingCandidates {
		decoded, err := candidate.enc.NewDecoder().Bytes(body)
		if err != nil {
			continue
		}
		text := string(decoded)
		if containsRussianText(text) && containsDomainKeyword(text) {
			return text, candidate.name, true
		}
	}

	return string(body), "utf-8", false
}

// charsetFromContentType извлекает имя кодировки из заголовка Content-Type
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// containsRussianText проверяет, содержит ли текст русские символы.
// Десяти букв кириллицы достаточно; иначе текст принимается по ключевым
// словам или хотя бы одному русскому символу.
func containsRussianText(text string) bool {
	count := 0
	for _, r := range text {
		if (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё' {
			count++
			if count >= 10 {
				return true
			}
		}
	}

	lower := strings.ToLower(text)
	keywords := []string{
		"расписание", "группа", "преподаватель", "аудитория", "пара", "урок",
		"занятие", "предмет", "дисциплина", "класс", "день",
	}
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return count > 0
}

// containsDomainKeyword проверяет наличие хотя бы одного ключевого слова
// предметной области без учета регистра
func containsDomainKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range domainKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
