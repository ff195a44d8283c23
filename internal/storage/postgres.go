// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"timetable/internal/model"
	"timetable/internal/storage/repository"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"
)

// Postgres представляет подключение к PostgreSQL
type Postgres struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPostgres создает новое подключение к PostgreSQL с retry логикой
func NewPostgres(databaseURL string, logger *zap.Logger) (*Postgres, error) {
	const maxRetries = 10
	const retryDelay = 5 * time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Info("Attempting to connect to database",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries))

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))

		// Настраиваем пул соединений
		sqldb.SetMaxOpenConns(25)
		sqldb.SetMaxIdleConns(10)
		sqldb.SetConnMaxLifetime(5 * time.Minute)
		sqldb.SetConnMaxIdleTime(1 * time.Minute)

		db := bun.NewDB(sqldb, pgdialect.New())

		// Добавляем отладку в режиме разработки
		if logger.Core().Enabled(zap.DebugLevel) {
			db.AddQueryHook(bundebug.NewQueryHook(
				bundebug.WithVerbose(true),
				bundebug.FromEnv("BUNDEBUG"),
			))
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		pingErr := db.PingContext(pingCtx)
		pingCancel()

		if pingErr != nil {
			logger.Warn("Failed to connect to database",
				zap.Int("attempt", attempt),
				zap.Error(pingErr))

			if err := db.Close(); err != nil {
				logger.Warn("Failed to close database connection", zap.Error(err))
			}

			if attempt == maxRetries {
				return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, pingErr)
			}

			logger.Info("Retrying connection", zap.Duration("delay", retryDelay))
			time.Sleep(retryDelay)
			continue
		}

		logger.Info("Connected to PostgreSQL database with Bun ORM",
			zap.Int("attempt", attempt))

		return &Postgres{
			db:     db,
			logger: logger,
		}, nil
	}

	return nil, fmt.Errorf("unexpected error: max retries exceeded")
}

// CreateSchema создает таблицы, если они еще не существуют
func (p *Postgres) CreateSchema(ctx context.Context) error {
	models := []interface{}{
		(*model.Group)(nil),
		(*model.Subject)(nil),
		(*model.Teacher)(nil),
		(*model.Classroom)(nil),
		(*model.Schedule)(nil),
	}

	for _, m := range models {
		if _, err := p.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}

	return nil
}

// Close закрывает соединение с базой данных
func (p *Postgres) Close() error {
	return p.db.Close()
}

// GetDB возвращает подключение к базе данных
func (p *Postgres) GetDB() *bun.DB {
	return p.db
}

// GetGroupRepository возвращает репозиторий групп
func (p *Postgres) GetGroupRepository() model.GroupRepository {
	return repository.NewGroupRepository(p.db, p.logger)
}

// GetSubjectRepository возвращает репозиторий дисциплин
func (p *Postgres) GetSubjectRepository() model.SubjectRepository {
	return repository.NewSubjectRepository(p.db, p.logger)
}

// GetTeacherRepository возвращает репозиторий преподавателей
func (p *Postgres) GetTeacherRepository() model.TeacherRepository {
	return repository.NewTeacherRepository(p.db, p.logger)
}

// GetClassroomRepository возвращает репозиторий аудиторий
func (p *Postgres) GetClassroomRepository() model.ClassroomRepository {
	return repository.NewClassroomRepository(p.db, p.logger)
}

// GetScheduleRepository возвращает репозиторий записей расписания
func (p *Postgres) GetScheduleRepository() model.ScheduleRepository {
	return repository.NewScheduleRepository(p.db, p.logger)
}
