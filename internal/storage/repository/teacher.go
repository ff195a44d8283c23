// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"timetable/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// TeacherRepository реализует интерфейс для работы с преподавателями
type TeacherRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewTeacherRepository создает новый репозиторий преподавателей
func NewTeacherRepository(db *bun.DB, logger *zap.Logger) *TeacherRepository {
	return &TeacherRepository{db: db, logger: logger}
}

// GetByID возвращает преподавателя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	teacher := new(model.Teacher)

	err := r.db.NewSelect().
		Model(teacher).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query teacher by ID: %w", err)
	}

	return teacher, nil
}

// GetByName возвращает преподавателя по ФИО
func (r *TeacherRepository) GetByName(ctx context.Context, name string) (*model.Teacher, error) {
	teacher := new(model.Teacher)

	err := r.db.NewSelect().
		Model(teacher).
		Where("name = ?", strings.TrimSpace(name)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query teacher by name: %w", err)
	}

	return teacher, nil
}

// GetOrCreate возвращает преподавателя по ФИО, создавая его при отсутствии
func (r *TeacherRepository) GetOrCreate(ctx context.Context, name string) (*model.Teacher, error) {
	name = strings.TrimSpace(name)

	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	teacher := &model.Teacher{Name: name}
	if _, err := r.db.NewInsert().Model(teacher).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	r.logger.Debug("Teacher created", zap.String("name", name), zap.Int("id", teacher.ID))
	return teacher, nil
}

// GetAll возвращает всех преподавателей
func (r *TeacherRepository) GetAll(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher

	err := r.db.NewSelect().
		Model(&teachers).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}

	return teachers, nil
}
