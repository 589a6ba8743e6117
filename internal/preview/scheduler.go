package preview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// startScheduler sets up a periodic rebuild at the given interval.
func (s *Server) startScheduler(interval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.triggerRebuild(context.Background(), "scheduled"); err != nil {
				slog.Error("Scheduled rebuild failed", "error", err)
			}
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("create periodic rebuild job: %w", err)
	}

	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", "interval", interval)
	return scheduler, nil
}
