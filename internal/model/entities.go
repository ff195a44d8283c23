// Package model содержит модели данных.
//
// Группа: ENTITIES - Справочные сущности расписания
// Содержит: Group, Subject, Teacher, Classroom и их репозитории
package model

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// UnspecifiedLabel подставляется вместо пустого преподавателя или аудитории
const UnspecifiedLabel = "Не указан"

// Group представляет учебную группу
type Group struct {
	bun.BaseModel `bun:"table:groups"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,unique,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Subject представляет учебную дисциплину
type Subject struct {
	bun.BaseModel `bun:"table:subjects"`

	ID          int       `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,unique,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Teacher представляет преподавателя
type Teacher struct {
	bun.BaseModel `bun:"table:teachers"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,unique,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Classroom представляет аудиторию
type Classroom struct {
	bun.BaseModel `bun:"table:classrooms"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Number    string    `bun:"number,unique,notnull" json:"number"`
	Building  string    `bun:"building,notnull,default:'БТК'" json:"building"`
	Capacity  int       `bun:"capacity,notnull,default:30" json:"capacity"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// GroupRepository определяет интерфейс для работы с группами
type GroupRepository interface {
	GetByID(ctx context.Context, id int) (*Group, error)
	GetByName(ctx context.Context, name string) (*Group, error)
	GetOrCreate(ctx context.Context, name string) (*Group, error)
	GetAll(ctx context.Context) ([]Group, error)
}

// SubjectRepository определяет интерфейс для работы с дисциплинами
type SubjectRepository interface {
	GetByID(ctx context.Context, id int) (*Subject, error)
	GetByName(ctx context.Context, name string) (*Subject, error)
	GetOrCreate(ctx context.Context, name string) (*Subject, error)
	GetAll(ctx context.Context) ([]Subject, error)
}

// TeacherRepository определяет интерфейс для работы с преподавателями
type TeacherRepository interface {
	GetByID(ctx context.Context, id int) (*Teacher, error)
	GetByName(ctx context.Context, name string) (*Teacher, error)
	GetOrCreate(ctx context.Context, name string) (*Teacher, error)
	GetAll(ctx context.Context) ([]Teacher, error)
}

// ClassroomRepository определяет интерфейс для работы с аудиториями
type ClassroomRepository interface {
	GetByID(ctx context.Context, id int) (*Classroom, error)
	GetByNumber(ctx context.Context, number string) (*Classroom, error)
	GetOrCreate(ctx context.Context, number string) (*Classroom, error)
	GetAll(ctx context.Context) ([]Classroom, error)
}
