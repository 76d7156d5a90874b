package scheduler

import (
	"context"
	"time"

	"rps_arena/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

// Refresher is anything that can rebuild a cached view.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StartLeaderboardRefresh runs r.Refresh every interval until the returned
// scheduler is shut down.
func StartLeaderboardRefresh(r Refresher, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := r.Refresh(ctx); err != nil {
				logger.Warn("leaderboard refresh failed", "error", err)
				return
			}
			logger.Debug("leaderboard refreshed")
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
