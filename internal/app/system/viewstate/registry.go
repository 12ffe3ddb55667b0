package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/advocates/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL is used when Options.TTL is not positive.
const DefaultTTL = 15 * time.Minute

// Registry tracks the live views of a web server, keyed by a random id that
// the page carries between requests.
type Registry struct {
	loader Loader
	opts   Options
	log    *zap.Logger

	base   context.Context
	cancel context.CancelFunc

	// now is swapped in tests.
	now func() time.Time

	mu    sync.Mutex
	views map[string]*entry
}

type entry struct {
	view     *View
	lastSeen time.Time
}

// NewRegistry constructs a Registry whose views load through loader.
func NewRegistry(loader Loader, opts Options, logger *zap.Logger) *Registry {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		loader: loader,
		opts:   opts,
		log:    logger,
		base:   ctx,
		cancel: cancel,
		now:    time.Now,
		views:  make(map[string]*entry),
	}
}

// TTL returns how long an idle view is kept.
func (r *Registry) TTL() time.Duration { return r.opts.TTL }

// Start activates a new view and begins its load.
func (r *Registry) Start() *View {
	id := uuid.NewString()
	v := Activate(r.base, id, r.loader, r.opts, r.log)

	r.mu.Lock()
	r.views[id] = &entry{view: v, lastSeen: r.now()}
	n := len(r.views)
	r.mu.Unlock()

	metrics.ActiveViews.Set(float64(n))
	r.log.Debug("view activated", zap.String("view", id))
	return v
}

// Get returns the view with the given id and marks it as recently used.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.view, true
}

// Deactivate ends and forgets the view with the given id. It reports
// whether the view existed.
func (r *Registry) Deactivate(id string) bool {
	r.mu.Lock()
	e, ok := r.views[id]
	if ok {
		delete(r.views, id)
	}
	n := len(r.views)
	r.mu.Unlock()

	if !ok {
		return false
	}
	e.view.Deactivate()
	metrics.ActiveViews.Set(float64(n))
	r.log.Debug("view deactivated", zap.String("view", id))
	return true
}

// Sweep deactivates and forgets views not used within the TTL. It returns
// how many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.opts.TTL)

	r.mu.Lock()
	var stale []*View
	for id, e := range r.views {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.view)
			delete(r.views, id)
		}
	}
	n := len(r.views)
	r.mu.Unlock()

	for _, v := range stale {
		v.Deactivate()
	}
	metrics.ActiveViews.Set(float64(n))
	return len(stale)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Close deactivates every view. Views started afterwards are canceled
// immediately.
func (r *Registry) Close() {
	r.mu.Lock()
	all := make([]*View, 0, len(r.views))
	for id, e := range r.views {
		all = append(all, e.view)
		delete(r.views, id)
	}
	r.mu.Unlock()

	for _, v := range all {
		v.Deactivate()
	}
	r.cancel()
	metrics.ActiveViews.Set(0)
}
