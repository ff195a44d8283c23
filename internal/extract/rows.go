// Package extract содержит построчное извлечение записей расписания.
package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timetable/internal/model"

	"go.uber.org/zap"
)

// RowExtractor превращает строки таблицы в кандидаты записей расписания
type RowExtractor struct {
	logger *zap.Logger
}

// NewRowExtractor создает новый экстрактор строк
func NewRowExtractor(logger *zap.Logger) *RowExtractor {
	return &RowExtractor{logger: logger}
}

// ExtractRows обходит строки данных и собирает кандидаты. Дата,
// встреченная в первой ячейке строки, действует на все последующие
// строки до следующей даты: так устроены таблицы с датой один раз на
// блок дня. Некорректные строки пропускаются, обход продолжается.
func (e *RowExtractor) ExtractRows(rows [][]string, columns model.ColumnMap, initialDate time.Time) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(rows))
	currentDate := initialDate

	for i, cells := range rows {
		candidate, nextDate, err := e.extractRow(cells, columns, currentDate)
		currentDate = nextDate
		if err != nil {
			e.logger.Warn("Row skipped",
				zap.Int("row", i+1),
				zap.Error(err))
			continue
		}
		if candidate != nil {
			candidates = append(candidates, *candidate)
		}
	}

	return candidates
}

// extractRow обрабатывает одну строку. Возвращает nil-кандидата без
// ошибки для строк, которые по содержимому не являются занятием.
// Дата-аккумулятор возвращается явно, личного состояния у экстрактора нет.
func (e *RowExtractor) extractRow(cells []string, columns model.ColumnMap, currentDate time.Time) (candidate *model.Candidate, nextDate time.Time, err error) {
	nextDate = currentDate

	defer func() {
		if r := recover(); r != nil {
			candidate = nil
			err = fmt.Errorf("row processing panicked: %v", r)
		}
	}()

	if len(cells) < 3 {
		return nil, nextDate, nil
	}

	// Первая ячейка с датой обновляет контекст даты для блока строк
	if first := strings.TrimSpace(cells[0]); first != "" {
		if rowDate, ok := ResolveDate(first); ok {
			nextDate = rowDate
			e.logger.Debug("Date found in row", zap.Time("date", rowDate))
		}
	}

	groupText := cellValue(cells, columns, model.FieldGroup)
	teacherText := cellValue(cells, columns, model.FieldTeacher)

	// Должна быть указана либо группа, либо преподаватель
	if groupText == "" && teacherText == "" {
		return nil, nextDate, nil
	}

	subjectText := cellValue(cells, columns, model.FieldSubject)
	if subjectText == "" {
		return nil, nextDate, nil
	}

	lesson := parseLessonNumber(cellValue(cells, columns, model.FieldLesson))
	start, end := TimesFor(lesson, nextDate)

	classroomText := cellValue(cells, columns, model.FieldClassroom)
	if classroomText == "" {
		classroomText = model.UnspecifiedLabel
	}

	groupName := groupText
	if groupName == "" {
		// Строка преподавательской таблицы: подставляем условную группу,
		// чтобы каждая запись имела группу
		groupName = "Группа для " + teacherText
	}

	if teacherText == "" {
		teacherText = model.UnspecifiedLabel
	}

	return &model.Candidate{
		Date:            nextDate,
		Lesson:          lesson,
		StartTime:       start,
		EndTime:         end,
		GroupName:       groupName,
		SubjectName:     subjectText,
		TeacherName:     teacherText,
		ClassroomNumber: classroomText,
		LessonType:      classifyLessonType(subjectText, cellValue(cells, columns, model.FieldSubgroup)),
	}, nextDate, nil
}

// cellValue возвращает обрезанное значение ячейки поля или пустую строку
func cellValue(cells []string, columns model.ColumnMap, field model.Field) string {
	index, ok := columns[field]
	if !ok || index < 0 || index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[index])
}

// parseLessonNumber извлекает номер пары как первую группу цифр в тексте:
// поддерживаются формы "1", "1 пара", "1 (8:30-10:00)"
func parseLessonNumber(text string) int {
	match := digitsPattern.FindString(text)
	if match == "" {
		return 0
	}
	lesson, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return lesson
}

// classifyLessonType определяет тип занятия по подгруппе и названию предмета
func classifyLessonType(subject, subgroupText string) string {
	if subgroup, err := strconv.Atoi(subgroupText); err == nil && subgroup > 0 {
		return fmt.Sprintf("Подгруппа %d", subgroup)
	}

	lower := strings.ToLower(subject)
	switch {
	case strings.Contains(lower, "лаб"):
		return "Лабораторная"
	case strings.Contains(lower, "практ"):
		return "Практика"
	default:
		return "Лекция"
	}
}
