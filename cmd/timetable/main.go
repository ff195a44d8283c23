// Package main запускает один проход извлечения и сверки расписания.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"timetable/internal/config"
	"timetable/internal/extract"
	"timetable/internal/reconcile"
	"timetable/internal/scraper"
	"timetable/internal/storage"
	"timetable/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Extraction run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := storage.NewPostgres(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.CreateSchema(ctx); err != nil {
		return err
	}

	client := scraper.NewClient(cfg.HTTPTimeout, scraper.RetryConfig(cfg.RetryConfig), log)

	dumpDir := ""
	if cfg.HTMLDumpEnabled {
		dumpDir = cfg.AppDataDir
	}

	extractor := extract.NewExtractor(client, dumpDir, log)

	candidates, err := extractor.Extract(ctx, cfg.ScheduleURL)
	if err != nil {
		logExtractionFailure(log, err)
		return err
	}

	reconciler := reconcile.New(reconcile.Repositories{
		Groups:     db.GetGroupRepository(),
		Subjects:   db.GetSubjectRepository(),
		Teachers:   db.GetTeacherRepository(),
		Classrooms: db.GetClassroomRepository(),
		Schedules:  db.GetScheduleRepository(),
	}, log)

	applied, err := reconciler.Reconcile(ctx, candidates)
	if err != nil {
		return err
	}

	log.Info("Schedule update complete", zap.Int("records", applied))
	return nil
}

// logExtractionFailure переводит типизированные ошибки в подсказку оператору
func logExtractionFailure(log *zap.Logger, err error) {
	var fetchErr *scraper.FetchError

	switch {
	case errors.As(err, &fetchErr):
		log.Error("Site unreachable, check the connection and the URL",
			zap.String("url", fetchErr.URL))
	case errors.Is(err, extract.ErrAuthRequired):
		log.Error("Site asked for authentication instead of the timetable page")
	case errors.Is(err, extract.ErrNoTableFound):
		log.Error("Page loaded but no timetable table was recognized, site structure may have changed")
	case errors.Is(err, extract.ErrInsufficientColumns):
		log.Error("Timetable table found but its columns could not be understood")
	case errors.Is(err, extract.ErrNoRecordsExtracted):
		log.Error("Timetable table found but no rows passed validation, likely no schedule published")
	}
}
