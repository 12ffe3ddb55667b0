// Package viewstate holds the state of directory views.
//
// A View is one activation of the directory: it loads the advocate list
// exactly once, holds the current search query, and derives the filtered
// rows. Its lifecycle is
//
//	Loading → Error
//	Loading → Ready
//
// Ready and Error are final for the activation; a reload is a new View.
// Query changes never leave the phase and never reload.
//
// Every applied change is published: Wait callers wake up and Subscribe
// listeners receive the new Snapshot. Renderers draw from snapshots only.
package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/advocates/internal/app/system/advocateapi"
	"github.com/dalemusser/advocates/internal/app/system/search"
	"github.com/dalemusser/advocates/internal/domain/models"
	"go.uber.org/zap"
)

// Phase is the top-level state of a View.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	}
	return "unknown"
}

// Loader fetches the advocate list. Fetch must return promptly once ctx is
// canceled.
type Loader interface {
	Fetch(ctx context.Context) ([]models.Advocate, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]models.Advocate, error)

// Fetch calls f(ctx).
func (f LoaderFunc) Fetch(ctx context.Context) ([]models.Advocate, error) { return f(ctx) }

// Options configures views and registries.
type Options struct {
	// TTL is how long a registry keeps a view nobody has asked for.
	TTL time.Duration

	// OnLoadError, if set, is called with every load failure that is not a
	// cancellation. It runs on the loading goroutine.
	OnLoadError func(viewID string, err error)
}

// Snapshot is a point-in-time copy of a View. The slices are shared with
// the view and must not be modified.
type Snapshot struct {
	ID          string
	Phase       Phase
	Query       string
	Rows        []models.Advocate // loaded records filtered by Query
	Err         string            // user-facing message in PhaseError
	Version     uint64
	Deactivated bool
}

// NoResults reports whether the view is ready but nothing matches.
func (s Snapshot) NoResults() bool {
	return s.Phase == PhaseReady && len(s.Rows) == 0
}

// View is one activation of the directory.
type View struct {
	id          string
	log         *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	onLoadError func(string, error)
	done        chan struct{}

	mu          sync.Mutex
	phase       Phase
	query       string
	records     []models.Advocate
	rows        []models.Advocate
	errMsg      string
	version     uint64
	deactivated bool
	changed     chan struct{}
	listeners   map[int]func(Snapshot)
	nextID      int
}

// Activate creates a View and starts its single load. The load runs under
// a context derived from parent; canceling parent or calling Deactivate
// cancels it, and its result is then discarded.
func Activate(parent context.Context, id string, loader Loader, opts Options, logger *zap.Logger) *View {
	ctx, cancel := context.WithCancel(parent)
	v := &View{
		id:          id,
		log:         logger,
		ctx:         ctx,
		cancel:      cancel,
		onLoadError: opts.OnLoadError,
		done:        make(chan struct{}),
		phase:       PhaseLoading,
		changed:     make(chan struct{}),
		listeners:   make(map[int]func(Snapshot)),
	}
	go v.load(loader)
	return v
}

// ID returns the view's identifier.
func (v *View) ID() string { return v.id }

// Done is closed once the load has finished, successfully or not.
func (v *View) Done() <-chan struct{} { return v.done }

func (v *View) load(loader Loader) {
	defer close(v.done)
	rows, err := loader.Fetch(v.ctx)
	v.finish(rows, err)
}

// finish applies a load result at most once, and never after the view
// was deactivated.
func (v *View) finish(rows []models.Advocate, err error) {
	v.mu.Lock()
	if v.deactivated || v.ctx.Err() != nil || v.phase != PhaseLoading {
		v.mu.Unlock()
		v.log.Debug("discarding load result", zap.String("view", v.id), zap.Error(err))
		return
	}

	if err != nil {
		v.phase = PhaseError
		v.errMsg = advocateapi.UserMessage(err)
	} else {
		if rows == nil {
			rows = []models.Advocate{}
		}
		v.phase = PhaseReady
		v.records = rows
		v.rows = search.Filter(rows, v.query)
	}
	snap, listeners := v.publishLocked()
	v.mu.Unlock()

	notify(listeners, snap)

	if err != nil {
		v.log.Info("directory load failed", zap.String("view", v.id), zap.Error(err))
		if v.onLoadError != nil {
			v.onLoadError(v.id, err)
		}
		return
	}
	v.log.Debug("directory loaded", zap.String("view", v.id), zap.Int("records", len(rows)))
}

// SetQuery stores q verbatim and re-derives the filtered rows from the
// records already held. It never reloads. Setting the current query again
// publishes nothing; so does any call after Deactivate.
func (v *View) SetQuery(q string) Snapshot {
	v.mu.Lock()
	if v.deactivated || v.query == q {
		s := v.snapshotLocked()
		v.mu.Unlock()
		return s
	}
	v.query = q
	if v.phase == PhaseReady {
		v.rows = search.Filter(v.records, q)
	}
	snap, listeners := v.publishLocked()
	v.mu.Unlock()

	notify(listeners, snap)
	return snap
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Wait blocks until the view's version is greater than since, the view is
// deactivated, or ctx is done, and returns the state at that point. The
// error is ctx's when ctx ended the wait.
func (v *View) Wait(ctx context.Context, since uint64) (Snapshot, error) {
	for {
		v.mu.Lock()
		if v.version > since || v.deactivated {
			s := v.snapshotLocked()
			v.mu.Unlock()
			return s, nil
		}
		ch := v.changed
		v.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return v.Snapshot(), ctx.Err()
		}
	}
}

// Subscribe registers fn to receive every published snapshot. Listeners run
// on the goroutine that made the change, outside the view's lock; when
// changes race, snapshots may arrive out of order, so compare Version.
func (v *View) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}

// Deactivate ends the activation: the in-flight load is canceled, its
// result is discarded and no further state changes are published. Waiters
// are released. Safe to call more than once.
func (v *View) Deactivate() {
	v.mu.Lock()
	if v.deactivated {
		v.mu.Unlock()
		return
	}
	v.deactivated = true
	close(v.changed)
	v.changed = make(chan struct{})
	v.mu.Unlock()

	v.cancel()
}

func (v *View) publishLocked() (Snapshot, []func(Snapshot)) {
	v.version++
	close(v.changed)
	v.changed = make(chan struct{})

	listeners := make([]func(Snapshot), 0, len(v.listeners))
	for _, fn := range v.listeners {
		listeners = append(listeners, fn)
	}
	return v.snapshotLocked(), listeners
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		ID:          v.id,
		Phase:       v.phase,
		Query:       v.query,
		Rows:        v.rows,
		Err:         v.errMsg,
		Version:     v.version,
		Deactivated: v.deactivated,
	}
}

func notify(listeners []func(Snapshot), s Snapshot) {
	for _, fn := range listeners {
		fn(s)
	}
}
