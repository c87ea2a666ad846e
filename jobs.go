package main

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/lunafay/turntable/db"
)

func SetupInBackground(store db.Store) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	s.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(logDailySummary, store),
	)

	return s, nil
}

func logDailySummary(store db.Store) {
	count, err := store.CountHistorySince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to count songs for daily summary")
		return
	}
	slog.With(slog.Int("songs", count)).Info("Songs recorded over the last day")
}
