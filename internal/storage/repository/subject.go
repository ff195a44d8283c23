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

// SubjectRepository реализует интерфейс для работы с дисциплинами
type SubjectRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSubjectRepository создает новый репозиторий дисциплин
func NewSubjectRepository(db *bun.DB, logger *zap.Logger) *SubjectRepository {
	return &SubjectRepository{db: db, logger: logger}
}

// GetByID возвращает дисциплину по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	subject := new(model.Subject)

	err := r.db.NewSelect().
		Model(subject).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subject by ID: %w", err)
	}

	return subject, nil
}

// GetByName возвращает дисциплину по названию
func (r *SubjectRepository) GetByName(ctx context.Context, name string) (*model.Subject, error) {
	subject := new(model.Subject)

	err := r.db.NewSelect().
		Model(subject).
		Where("name = ?", strings.TrimSpace(name)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query subject by name: %w", err)
	}

	return subject, nil
}

// GetOrCreate возвращает дисциплину по названию, создавая ее при отсутствии
func (r *SubjectRepository) GetOrCreate(ctx context.Context, name string) (*model.Subject, error) {
	name = strings.TrimSpace(name)

	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	subject := &model.Subject{Name: name}
	if _, err := r.db.NewInsert().Model(subject).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	r.logger.Debug("Subject created", zap.String("name", name), zap.Int("id", subject.ID))
	return subject, nil
}

// GetAll возвращает все дисциплины
func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject

	err := r.db.NewSelect().
		Model(&subjects).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}

	return subjects, nil
}
