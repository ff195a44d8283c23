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

// GroupRepository реализует интерфейс для работы с группами
type GroupRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGroupRepository создает новый репозиторий групп
func NewGroupRepository(db *bun.DB, logger *zap.Logger) *GroupRepository {
	return &GroupRepository{db: db, logger: logger}
}

// GetByID возвращает группу по ID
func (r *GroupRepository) GetByID(ctx context.Context, id int) (*model.Group, error) {
	group := new(model.Group)

	err := r.db.NewSelect().
		Model(group).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query group by ID: %w", err)
	}

	return group, nil
}

// GetByName возвращает группу по имени
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*model.Group, error) {
	group := new(model.Group)

	err := r.db.NewSelect().
		Model(group).
		Where("name = ?", strings.TrimSpace(name)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query group by name: %w", err)
	}

	return group, nil
}

// GetOrCreate возвращает группу по натуральному ключу, создавая ее при
// отсутствии. Имя сохраняется как пришло с сайта, обрезаются только
// пробелы по краям.
func (r *GroupRepository) GetOrCreate(ctx context.Context, name string) (*model.Group, error) {
	name = strings.TrimSpace(name)

	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	group := &model.Group{Name: name}
	if _, err := r.db.NewInsert().Model(group).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	r.logger.Debug("Group created", zap.String("name", name), zap.Int("id", group.ID))
	return group, nil
}

// GetAll возвращает все группы
func (r *GroupRepository) GetAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group

	err := r.db.NewSelect().
		Model(&groups).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}

	return groups, nil
}
