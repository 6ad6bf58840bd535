package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/saadsfaoui/cityscope/internal/city"
)

// Warmer periodically refreshes the cached data kinds for the seeded
// cities so the map opens on warm entries.
type Warmer struct {
	scheduler *gocron.Scheduler
	agg       *city.Aggregator
	seeds     []city.City
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a Warmer over the given seed cities.
func New(seeds []city.City, interval time.Duration, agg *city.Aggregator, logger *zap.Logger) *Warmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Warmer{
		scheduler: gocron.NewScheduler(time.UTC),
		agg:       agg,
		seeds:     seeds,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic warm job and starts the underlying
// scheduler. The first run happens immediately.
func (w *Warmer) Start() error {
	if len(w.seeds) == 0 {
		w.logger.Info("warmer: no seed cities configured; nothing to schedule")
		return nil
	}

	minutes := int(w.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := w.scheduler.Every(minutes).Minutes().StartImmediately().Do(func() {
		w.logger.Info("warmer: refreshing seed cities", zap.Int("count", len(w.seeds)))

		var wg sync.WaitGroup
		for _, seed := range w.seeds {
			seed := seed
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				w.agg.WarmCache(ctx, city.Query{
					City: seed.Name,
					Lat:  &seed.Lat,
					Lon:  &seed.Lon,
				})
			}()
		}
		wg.Wait()
		w.logger.Info("warmer: refresh complete")
	})
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (w *Warmer) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}
