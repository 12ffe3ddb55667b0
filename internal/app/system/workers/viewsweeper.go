// internal/app/system/workers/viewsweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes idle directory views. *viewstate.Registry satisfies it.
type Sweeper interface {
	Sweep() int
}

// ViewSweeper is a background worker that deactivates views nobody has
// asked for within the registry's TTL.
type ViewSweeper struct {
	views    Sweeper
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewViewSweeper creates a new view sweeper.
//
// Parameters:
//   - views: the registry to sweep
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
func NewViewSweeper(views Sweeper, logger *zap.Logger, interval time.Duration) *ViewSweeper {
	return &ViewSweeper{
		views:    views,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *ViewSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("view sweeper started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. Safe to call
// more than once.
func (w *ViewSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("view sweeper stopped")
	})
}

func (w *ViewSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ViewSweeper) sweep() {
	if n := w.views.Sweep(); n > 0 {
		w.log.Info("deactivated idle views", zap.Int("count", n))
	}
}
