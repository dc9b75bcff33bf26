// AngelaMos | 2026
// sweeper.go

package matches

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper deletes expired match_cache rows on a cron schedule. Between
// sweeps an expired row stays readable for the stale fallback.
type Sweeper struct {
	cron  *cron.Cron
	cache CacheRepository
}

func NewSweeper(schedule string, cache CacheRepository) (*Sweeper, error) {
	s := &Sweeper{
		cron:  cron.New(),
		cache: cache,
	}

	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.cache.DeleteExpired(ctx, time.Now())
	if err != nil {
		slog.Error("match cache sweep failed", "error", err)
		return
	}

	if deleted > 0 {
		slog.Info("match cache swept", "deleted", deleted)
	}
}
