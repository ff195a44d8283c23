// Package reconcile содержит сверку извлеченных кандидатов с базой данных.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"timetable/internal/extract"
	"timetable/internal/model"

	"go.uber.org/zap"
)

// ErrNoEntitiesResolved ни одна сущность не получена из кандидатов,
// база осталась нетронутой
var ErrNoEntitiesResolved = errors.New("no schedule entities resolved from candidates")

// Repositories объединяет хранилища, с которыми работает сверка
type Repositories struct {
	Groups     model.GroupRepository
	Subjects   model.SubjectRepository
	Teachers   model.TeacherRepository
	Classrooms model.ClassroomRepository
	Schedules  model.ScheduleRepository
}

// Reconciler сводит кандидаты в базу без дубликатов
type Reconciler struct {
	repos  Repositories
	logger *zap.Logger
}

// New создает новый Reconciler
func New(repos Repositories, logger *zap.Logger) *Reconciler {
	return &Reconciler{repos: repos, logger: logger}
}

// Reconcile сохраняет кандидаты: справочные сущности дополняются по
// натуральным ключам и никогда не удаляются, расписание заменяется
// целиком. Возвращает количество сохраненных записей.
func (r *Reconciler) Reconcile(ctx context.Context, candidates []model.Candidate) (int, error) {
	groups := map[string]*model.Group{}
	subjects := map[string]*model.Subject{}
	teachers := map[string]*model.Teacher{}
	classrooms := map[string]*model.Classroom{}

	for _, c := range candidates {
		if c.GroupName != "" && groups[c.GroupName] == nil {
			group, err := r.repos.Groups.GetOrCreate(ctx, c.GroupName)
			if err != nil {
				return 0, fmt.Errorf("failed to upsert group %q: %w", c.GroupName, err)
			}
			groups[c.GroupName] = group
		}
		if c.SubjectName != "" && subjects[c.SubjectName] == nil {
			subject, err := r.repos.Subjects.GetOrCreate(ctx, c.SubjectName)
			if err != nil {
				return 0, fmt.Errorf("failed to upsert subject %q: %w", c.SubjectName, err)
			}
			subjects[c.SubjectName] = subject
		}
		if c.TeacherName != "" && teachers[c.TeacherName] == nil {
			teacher, err := r.repos.Teachers.GetOrCreate(ctx, c.TeacherName)
			if err != nil {
				return 0, fmt.Errorf("failed to upsert teacher %q: %w", c.TeacherName, err)
			}
			teachers[c.TeacherName] = teacher
		}
		if c.ClassroomNumber != "" && classrooms[c.ClassroomNumber] == nil {
			classroom, err := r.repos.Classrooms.GetOrCreate(ctx, c.ClassroomNumber)
			if err != nil {
				return 0, fmt.Errorf("failed to upsert classroom %q: %w", c.ClassroomNumber, err)
			}
			classrooms[c.ClassroomNumber] = classroom
		}
	}

	if len(groups) == 0 && len(subjects) == 0 && len(teachers) == 0 && len(classrooms) == 0 {
		return 0, ErrNoEntitiesResolved
	}

	r.logger.Info("Entities resolved",
		zap.Int("groups", len(groups)),
		zap.Int("subjects", len(subjects)),
		zap.Int("teachers", len(teachers)),
		zap.Int("classrooms", len(classrooms)))

	// Дедупликация: первое вхождение ключа побеждает
	seen := map[string]bool{}
	records := make([]model.Schedule, 0, len(candidates))

	for _, c := range candidates {
		group := groups[c.GroupName]
		subject := subjects[c.SubjectName]
		teacher := teachers[c.TeacherName]
		classroom := classrooms[c.ClassroomNumber]

		if group == nil || subject == nil || teacher == nil || classroom == nil {
			r.logger.Warn("Candidate skipped, related entity missing",
				zap.String("group", c.GroupName),
				zap.String("subject", c.SubjectName))
			continue
		}

		lessonNumber := extract.OrdinalForTime(c.StartTime, c.Date)
		key := fmt.Sprintf("%s_%d_%d_%d", c.Date.Format("2006-01-02"), group.ID, lessonNumber, subject.ID)

		if seen[key] {
			r.logger.Debug("Duplicate schedule candidate dropped", zap.String("key", key))
			continue
		}
		seen[key] = true

		records = append(records, model.Schedule{
			Date:        c.Date,
			StartTime:   c.StartTime,
			EndTime:     c.EndTime,
			LessonType:  c.LessonType,
			GroupID:     group.ID,
			SubjectID:   subject.ID,
			TeacherID:   teacher.ID,
			ClassroomID: classroom.ID,
		})
	}

	if err := r.repos.Schedules.ReplaceAll(ctx, records); err != nil {
		return 0, err
	}

	r.logger.Info("Schedule reconciled", zap.Int("records", len(records)))
	return len(records), nil
}
