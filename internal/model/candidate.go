// Package model содержит модели данных.
//
// Группа: EXTRACTION - Промежуточные результаты разбора страницы
// Содержит: RawPage, Candidate, Field, ColumnMap
package model

import "time"

// RawPage представляет сырой ответ сайта с результатом определения кодировки
type RawPage struct {
	Body      []byte
	Text      string
	Encoding  string
	Confident bool
}

// Field обозначает смысловое назначение колонки таблицы
type Field string

// Поддерживаемые поля таблицы расписания
const (
	FieldDate      Field = "date"
	FieldGroup     Field = "group"
	FieldLesson    Field = "lesson"
	FieldSubject   Field = "subject"
	FieldTeacher   Field = "teacher"
	FieldClassroom Field = "classroom"
	FieldSubgroup  Field = "subgroup"
)

// ColumnMap сопоставляет смысловое поле с индексом колонки таблицы
type ColumnMap map[Field]int

// Viable сообщает, достаточно ли распознанных колонок для извлечения:
// обязателен предмет и хотя бы одна из колонок группа/преподаватель
func (m ColumnMap) Viable() bool {
	if _, ok := m[FieldSubject]; !ok {
		return false
	}
	_, hasGroup := m[FieldGroup]
	_, hasTeacher := m[FieldTeacher]
	return hasGroup || hasTeacher
}

// Candidate представляет извлеченную, но еще не сохраненную запись расписания
type Candidate struct {
	Date            time.Time
	Lesson          int
	StartTime       TimeOfDay
	EndTime         TimeOfDay
	GroupName       string
	SubjectName     string
	TeacherName     string
	ClassroomNumber string
	LessonType      string
}
