// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"fmt"
	"time"

	"timetable/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ScheduleRepository реализует интерфейс для работы с записями расписания
type ScheduleRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewScheduleRepository создает новый репозиторий записей расписания
func NewScheduleRepository(db *bun.DB, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger}
}

// ReplaceAll заменяет все записи расписания новыми. Удаление и вставка
// выполняются одной транзакцией, чтобы сбой между фазами не оставил
// базу без расписания.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, schedules []model.Schedule) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Schedule)(nil)).
			Where("TRUE").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete existing schedules: %w", err)
		}

		if len(schedules) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().
			Model(&schedules).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert schedules: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to replace schedules: %w", err)
	}

	r.logger.Info("Schedules replaced", zap.Int("count", len(schedules)))
	return nil
}

// GetAll возвращает все записи расписания со связанными сущностями
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule

	err := r.db.NewSelect().
		Model(&schedules).
		Relation("Group").
		Relation("Subject").
		Relation("Teacher").
		Relation("Classroom").
		Order("date ASC", "start_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}

	return schedules, nil
}

// GetForGroupByDate возвращает занятия группы на дату по времени начала
func (r *ScheduleRepository) GetForGroupByDate(ctx context.Context, groupID int, date time.Time) ([]model.Schedule, error) {
	return r.byDate(ctx, "group_id", groupID, date)
}

// GetForTeacherByDate возвращает занятия преподавателя на дату
func (r *ScheduleRepository) GetForTeacherByDate(ctx context.Context, teacherID int, date time.Time) ([]model.Schedule, error) {
	return r.byDate(ctx, "teacher_id", teacherID, date)
}

// GetForClassroomByDate возвращает занятия в аудитории на дату
func (r *ScheduleRepository) GetForClassroomByDate(ctx context.Context, classroomID int, date time.Time) ([]model.Schedule, error) {
	return r.byDate(ctx, "classroom_id", classroomID, date)
}

// Count возвращает количество записей расписания
func (r *ScheduleRepository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.Schedule)(nil)).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	return count, nil
}

func (r *ScheduleRepository) byDate(ctx context.Context, column string, id int, date time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule

	err := r.db.NewSelect().
		Model(&schedules).
		Relation("Group").
		Relation("Subject").
		Relation("Teacher").
		Relation("Classroom").
		Where("? = ?", bun.Ident(column), id).
		Where("date = ?", date).
		Order("start_time ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query schedules by %s: %w", column, err)
	}

	return schedules, nil
}
