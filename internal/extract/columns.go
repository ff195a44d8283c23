// Package extract содержит определение назначения колонок таблицы.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"timetable/internal/model"

	"go.uber.org/zap"
)

// fieldKeywords перечисляет варианты заголовков для каждого поля.
// Порядок полей важен: при неоднозначном заголовке побеждает первое
// подошедшее поле.
var fieldKeywords = []struct {
	field    model.Field
	keywords []string
}{
	{model.FieldDate, []string{"дата", "день", "дата занятия", "день недели"}},
	{model.FieldGroup, []string{"группа", "класс", "группы", "классы", "номер группы"}},
	{model.FieldLesson, []string{"пара", "урок", "номер", "номер пары", "номер урока", "время", "время занятия", "№", "№ пары"}},
	{model.FieldSubject, []string{"предмет", "дисциплина", "название", "занятие", "наименование предмета"}},
	{model.FieldTeacher, []string{"преподаватель", "препод", "фио", "фио преподавателя", "учитель"}},
	{model.FieldClassroom, []string{"аудитория", "каб", "кабинет", "ауд", "место", "помещение", "номер аудитории"}},
	{model.FieldSubgroup, []string{"подгруппа", "подгр", "группировка"}},
}

// layoutTemplate представляет гипотезу о порядке колонок таблицы
type layoutTemplate struct {
	name    string
	columns model.ColumnMap
}

// Закрытый набор шаблонов для таблиц без распознаваемого заголовка.
// Новая гипотеза добавляется одной строкой.
var layoutTemplates = []layoutTemplate{
	{
		name: "group-lesson-subject-teacher-classroom",
		columns: model.ColumnMap{
			model.FieldGroup: 0, model.FieldLesson: 1, model.FieldSubject: 2,
			model.FieldTeacher: 3, model.FieldClassroom: 4,
		},
	},
	{
		name: "date-group-lesson-subject-teacher-classroom",
		columns: model.ColumnMap{
			model.FieldDate: 0, model.FieldGroup: 1, model.FieldLesson: 2,
			model.FieldSubject: 3, model.FieldTeacher: 4, model.FieldClassroom: 5,
		},
	},
	{
		name: "lesson-subject-teacher-classroom",
		columns: model.ColumnMap{
			model.FieldLesson: 0, model.FieldSubject: 1,
			model.FieldTeacher: 2, model.FieldClassroom: 3,
		},
	},
	{
		name: "date-teacher-lesson-subject-group-classroom",
		columns: model.ColumnMap{
			model.FieldDate: 0, model.FieldTeacher: 1, model.FieldLesson: 2,
			model.FieldSubject: 3, model.FieldGroup: 4, model.FieldClassroom: 5,
		},
	},
}

// defaultColumns подставляется, когда ни один шаблон не набрал очков
var defaultColumns = model.ColumnMap{
	model.FieldGroup: 0, model.FieldLesson: 1, model.FieldSubject: 2,
	model.FieldTeacher: 3, model.FieldClassroom: 4,
}

// contentSampleSize количество строк данных для шаблонного анализа
const contentSampleSize = 10

var (
	groupPattern     = regexp.MustCompile(`\d+\w*`)
	lessonPattern    = regexp.MustCompile(`^\d+`)
	digitsPattern    = regexp.MustCompile(`\d+`)
	classroomKeyword = "АУД"
)

// InferColumns определяет назначение колонок по ячейкам заголовка.
// Точное совпадение предпочтительнее вхождения подстроки; колонка
// получает не больше одного поля, а поле не больше одной колонки.
func InferColumns(header []string) model.ColumnMap {
	result := model.ColumnMap{}

	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if normalized == "" {
			continue
		}

		if field, ok := matchHeaderCell(normalized, result); ok {
			result[field] = i
		}
	}

	return result
}

// matchHeaderCell ищет поле для ячейки заголовка среди еще не занятых
func matchHeaderCell(cell string, assigned model.ColumnMap) (model.Field, bool) {
	// Сначала точные совпадения по всем полям
	for _, entry := range fieldKeywords {
		if _, taken := assigned[entry.field]; taken {
			continue
		}
		for _, keyword := range entry.keywords {
			if cell == keyword {
				return entry.field, true
			}
		}
	}

	// Затем вхождения подстроки
	for _, entry := range fieldKeywords {
		if _, taken := assigned[entry.field]; taken {
			continue
		}
		for _, keyword := range entry.keywords {
			if strings.Contains(cell, keyword) {
				return entry.field, true
			}
		}
	}

	return "", false
}

// InferColumnsFromContent подбирает шаблон порядка колонок по содержимому
// строк данных, когда заголовок не дал ни одного поля
func InferColumnsFromContent(rows [][]string, logger *zap.Logger) model.ColumnMap {
	sample := rows
	if len(sample) > contentSampleSize {
		sample = sample[:contentSampleSize]
	}

	bestScore := 0
	best := layoutTemplate{}

	for _, template := range layoutTemplates {
		score := scoreTemplate(template, sample)
		logger.Debug("Layout template scored",
			zap.String("template", template.name),
			zap.Int("score", score))

		if score > bestScore {
			bestScore = score
			best = template
		}
	}

	if bestScore == 0 {
		logger.Warn("No layout template matched sampled rows, using default column order")
		return defaultColumns
	}

	logger.Info("Inferred table layout from content",
		zap.String("template", best.name),
		zap.Int("score", bestScore))
	return best.columns
}

// scoreTemplate оценивает соответствие строк данных шаблону
func scoreTemplate(template layoutTemplate, rows [][]string) int {
	total := 0

	for _, cells := range rows {
		if len(cells) < 3 {
			continue
		}

		for field, index := range template.columns {
			if index < 0 || index >= len(cells) {
				continue
			}
			cell := strings.TrimSpace(cells[index])
			if cell == "" {
				continue
			}
			total += scoreCellShape(field, cell)
		}
	}

	return total
}

// scoreCellShape оценивает, насколько значение ячейки похоже на ожидаемый
// для поля формат
func scoreCellShape(field model.Field, cell string) int {
	switch field {
	case model.FieldDate:
		if _, ok := ResolveDate(cell); ok {
			return 3
		}
	case model.FieldGroup:
		if groupPattern.MatchString(cell) {
			return 2
		}
	case model.FieldLesson:
		if lessonPattern.MatchString(cell) {
			return 2
		}
	case model.FieldSubject:
		if utf8.RuneCountInString(cell) > 5 {
			return 1
		}
	case model.FieldTeacher:
		if strings.Contains(cell, " ") {
			return 2
		}
	case model.FieldClassroom:
		if digitsPattern.MatchString(cell) || strings.Contains(strings.ToUpper(cell), classroomKeyword) {
			return 2
		}
	}
	return 0
}
