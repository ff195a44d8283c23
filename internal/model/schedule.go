// Package model содержит модели данных.
//
// Группа: SCHEDULE - Записи расписания
// Содержит: Schedule, ScheduleRepository
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Schedule представляет сохраненную запись расписания
type Schedule struct {
	bun.BaseModel `bun:"table:schedules"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	Date       time.Time `bun:"date,notnull" json:"date"`
	StartTime  TimeOfDay `bun:"start_time,notnull" json:"start_time"`
	EndTime    TimeOfDay `bun:"end_time,notnull" json:"end_time"`
	LessonType string    `bun:"lesson_type,notnull" json:"lesson_type"`

	GroupID     int `bun:"group_id,notnull" json:"group_id"`
	SubjectID   int `bun:"subject_id,notnull" json:"subject_id"`
	TeacherID   int `bun:"teacher_id,notnull" json:"teacher_id"`
	ClassroomID int `bun:"classroom_id,notnull" json:"classroom_id"`

	Group     *Group     `bun:"rel:belongs-to,join:group_id=id" json:"group,omitempty"`
	Subject   *Subject   `bun:"rel:belongs-to,join:subject_id=id" json:"subject,omitempty"`
	Teacher   *Teacher   `bun:"rel:belongs-to,join:teacher_id=id" json:"teacher,omitempty"`
	Classroom *Classroom `bun:"rel:belongs-to,join:classroom_id=id" json:"classroom,omitempty"`
}

// ScheduleRepository определяет интерфейс для работы с записями расписания
type ScheduleRepository interface {
	// ReplaceAll удаляет все записи расписания и вставляет новые одной транзакцией
	ReplaceAll(ctx context.Context, schedules []Schedule) error
	GetAll(ctx context.Context) ([]Schedule, error)
	GetForGroupByDate(ctx context.Context, groupID int, date time.Time) ([]Schedule, error)
	GetForTeacherByDate(ctx context.Context, teacherID int, date time.Time) ([]Schedule, error)
	GetForClassroomByDate(ctx context.Context, classroomID int, date time.Time) ([]Schedule, error)
	Count(ctx context.Context) (int, error)
}
