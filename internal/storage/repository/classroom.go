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

// ClassroomRepository реализует интерфейс для работы с аудиториями
type ClassroomRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewClassroomRepository создает новый репозиторий аудиторий
func NewClassroomRepository(db *bun.DB, logger *zap.Logger) *ClassroomRepository {
	return &ClassroomRepository{db: db, logger: logger}
}

// GetByID возвращает аудиторию по ID
func (r *ClassroomRepository) GetByID(ctx context.Context, id int) (*model.Classroom, error) {
	classroom := new(model.Classroom)

	err := r.db.NewSelect().
		Model(classroom).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query classroom by ID: %w", err)
	}

	return classroom, nil
}

// GetByNumber возвращает аудиторию по номеру
func (r *ClassroomRepository) GetByNumber(ctx context.Context, number string) (*model.Classroom, error) {
	classroom := new(model.Classroom)

	err := r.db.NewSelect().
		Model(classroom).
		Where("number = ?", strings.TrimSpace(number)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query classroom by number: %w", err)
	}

	return classroom, nil
}

// GetOrCreate возвращает аудиторию по номеру, создавая ее при отсутствии
func (r *ClassroomRepository) GetOrCreate(ctx context.Context, number string) (*model.Classroom, error) {
	number = strings.TrimSpace(number)

	existing, err := r.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	classroom := &model.Classroom{
		Number:   number,
		Building: "БТК",
		Capacity: 30,
	}
	if _, err := r.db.NewInsert().Model(classroom).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create classroom: %w", err)
	}

	r.logger.Debug("Classroom created", zap.String("number", number), zap.Int("id", classroom.ID))
	return classroom, nil
}

// GetAll возвращает все аудитории
func (r *ClassroomRepository) GetAll(ctx context.Context) ([]model.Classroom, error) {
	var classrooms []model.Classroom

	err := r.db.NewSelect().
		Model(&classrooms).
		Order("number ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query classrooms: %w", err)
	}

	return classrooms, nil
}
