// Package extract содержит разбор свободных форм записи даты.
package extract

import (
	"strconv"
	"strings"
	"time"
)

// monthStem сопоставляет усеченную основу названия месяца с его номером
type monthStem struct {
	stem  string
	month time.Month
}

// Основы проверяются префиксным сравнением, поэтому "мая", "май",
// "сентября" и "сент." распознаются одной таблицей
var monthStems = []monthStem{
	{"янв", time.January},
	{"фев", time.February},
	{"март", time.March},
	{"мар", time.March},
	{"апр", time.April},
	{"май", time.May},
	{"мая", time.May},
	{"июн", time.June},
	{"июл", time.July},
	{"авг", time.August},
	{"сент", time.September},
	{"сен", time.September},
	{"окт", time.October},
	{"ноя", time.November},
	{"нояб", time.November},
	{"дек", time.December},
}

var weekdayNames = []string{
	"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
}

// exactLayouts проверяются после основной эвристики в фиксированном порядке
var exactLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02.01.06",
}

// genericLayouts последняя попытка для форматов вне основного списка
var genericLayouts = []string{
	"2006.01.02",
	"02-01-2006",
}

const dateTrimCutset = "()[]{}«»\",:.!? "

// ResolveDate разбирает свободную форму записи даты: "22 мая",
// "22-мая-2023", "пятница, 22 мая", "22.05.2023" и т.п.
// Возвращает false вместо ошибки для нераспознанного текста.
func ResolveDate(text string) (time.Time, bool) {
	return resolveDateAt(text, time.Now())
}

// resolveDateAt выполняет разбор относительно переданного "сегодня";
// от него зависят подстановка года и перенос на следующий год
func resolveDateAt(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Trim(text, dateTrimCutset)
	if text == "" {
		return time.Time{}, false
	}

	// Основная эвристика: "день месяц [год]" с разными разделителями
	for _, separator := range []string{" ", "-", "."} {
		if date, ok := parseDayMonthYear(strings.Split(text, separator), now); ok {
			return date, true
		}
	}

	// Форма с названием дня недели: "понедельник, 22 мая"
	for _, dayName := range weekdayNames {
		idx := strings.Index(text, dayName)
		if idx < 0 {
			continue
		}
		rest := strings.Trim(text[idx+len(dayName):], " ,:.-")
		if rest != "" {
			if date, ok := resolveDateAt(rest, now); ok {
				return date, true
			}
		}
	}

	for _, layout := range exactLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}

	for _, layout := range genericLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// parseDayMonthYear интерпретирует токены как день, основу месяца и
// необязательный год
func parseDayMonthYear(parts []string, now time.Time) (time.Time, bool) {
	if len(parts) < 2 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}

	month := matchMonthStem(strings.TrimSpace(parts[1]))
	if month == 0 {
		return time.Time{}, false
	}

	year := now.Year()
	if len(parts) >= 3 {
		if parsedYear, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			if parsedYear < 100 {
				parsedYear += 2000
			}
			year = parsedYear
		} else if month < now.Month() {
			year++
		}
	} else if month < now.Month() {
		// Месяц уже прошел: расписание опубликовано на следующий год
		year++
	}

	if day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func matchMonthStem(token string) time.Month {
	for _, m := range monthStems {
		if strings.HasPrefix(token, m.stem) {
			return m.month
		}
	}
	return 0
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
