// internal/app/features/advocates/handler.go
package advocates

import (
	"context"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/dalemusser/advocates/internal/app/features/errors"
	"github.com/dalemusser/advocates/internal/app/system/ratelimit"
	"github.com/dalemusser/advocates/internal/app/system/viewdata"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultPollWait bounds how long a results request waits for a load.
const DefaultPollWait = 25 * time.Second

// HeartbeatPath is where open pages report that they are still in use.
const HeartbeatPath = "/api/heartbeat"

// Renderer renders named templates. The default renders through the
// shared waffle template engine.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, name string, data any)
	RenderSnippet(w http.ResponseWriter, name string, data any)
}

type waffleRenderer struct{}

func (waffleRenderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

func (waffleRenderer) RenderSnippet(w http.ResponseWriter, name string, data any) {
	templates.RenderSnippet(w, name, data)
}

// Allower decides whether a client may start another view.
type Allower interface {
	Allow(key string) bool
	Remaining(key string) int
}

// Handler serves the advocate directory.
type Handler struct {
	Views           *viewstate.Registry
	Activations     Allower // nil allows every activation
	TrustProxy      bool    // key activations on X-Forwarded-For / X-Real-IP
	ListSpecialties bool
	PollWait        time.Duration
	Heartbeat       time.Duration // how often an open page reports in; 0 disables
	Pages           Renderer
	Log             *zap.Logger
}

// NewHandler constructs a directory Handler.
func NewHandler(views *viewstate.Registry, listSpecialties bool, pollWait time.Duration, logger *zap.Logger) *Handler {
	if pollWait <= 0 {
		pollWait = DefaultPollWait
	}
	return &Handler{
		Views:           views,
		ListSpecialties: listSpecialties,
		PollWait:        pollWait,
		Pages:           waffleRenderer{},
		Log:             logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – activation                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeIndex starts a new view and renders the page right away; the results
// region polls itself until the load settles.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if h.Activations != nil {
		client := ratelimit.ClientIP(r, h.TrustProxy)
		if !h.Activations.Allow(client) {
			h.Log.Warn("activation rate limited", zap.String("client", client))
			w.Header().Set("Retry-After", "60")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			h.Pages.Render(w, r, "error_page", uierrors.NewPage(r, "Too many requests",
				"The directory was reloaded too often. Please wait a minute and try again.", reloadURL(r.URL.Query().Get("q"))))
			return
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(h.Activations.Remaining(client)))
	}

	v := h.Views.Start()
	snap := v.SetQuery(r.URL.Query().Get("q"))
	h.renderPage(w, r, snap)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /advocates/{id} – full page for an existing view                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePage renders the whole page for an existing view. It is the search
// form's target when scripts are off, so it waits for a pending load.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	v, ok := h.Views.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Redirect(w, r, reloadURL(q), http.StatusSeeOther)
		return
	}

	snap := h.settle(r.Context(), v, h.applyQuery(r, v))
	if snap.Deactivated {
		http.Redirect(w, r, reloadURL(snap.Query), http.StatusSeeOther)
		return
	}
	h.renderPage(w, r, snap)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /advocates/{id}/results – HTMX partial                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeResults applies the query, if sent, and renders the results region
// with out-of-band updates for the live region and clear control. While the
// view is loading it long-polls for up to PollWait.
func (h *Handler) ServeResults(w http.ResponseWriter, r *http.Request) {
	v, ok := h.Views.Get(chi.URLParam(r, "id"))
	if !ok {
		h.expired(w, r, r.URL.Query().Get("q"))
		return
	}

	snap := h.settle(r.Context(), v, h.applyQuery(r, v))
	if snap.Deactivated {
		h.expired(w, r, snap.Query)
		return
	}
	h.renderResults(w, snap, false)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /advocates/{id}/clear                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleClear empties the query and renders the results region, resetting
// the search input out of band.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	v, ok := h.Views.Get(chi.URLParam(r, "id"))
	if !ok {
		h.expired(w, r, "")
		return
	}

	snap := v.SetQuery("")
	if snap.Deactivated {
		h.expired(w, r, "")
		return
	}
	if !uierrors.IsHTMX(r) {
		http.Redirect(w, r, viewURL(snap.ID, ""), http.StatusSeeOther)
		return
	}
	h.renderResults(w, snap, true)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /advocates/{id}/deactivate                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDeactivate ends a view: its load, if still pending, is canceled and
// its result discarded. Unknown ids are not an error.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.Views.Deactivate(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// applyQuery sets the view's query when the request carries one.
func (h *Handler) applyQuery(r *http.Request, v *viewstate.View) viewstate.Snapshot {
	if values := r.URL.Query(); values.Has("q") {
		return v.SetQuery(values.Get("q"))
	}
	return v.Snapshot()
}

// settle waits up to PollWait for a loading view to leave Loading.
func (h *Handler) settle(ctx context.Context, v *viewstate.View, snap viewstate.Snapshot) viewstate.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, h.PollWait)
	defer cancel()

	for snap.Phase == viewstate.PhaseLoading && !snap.Deactivated {
		next, err := v.Wait(ctx, snap.Version)
		if err != nil {
			return next
		}
		snap = next
	}
	return snap
}

// expired sends the browser to a fresh activation.
func (h *Handler) expired(w http.ResponseWriter, r *http.Request, q string) {
	h.Log.Debug("unknown or expired view", zap.String("view", chi.URLParam(r, "id")))
	uierrors.HTMXRedirect(w, r, reloadURL(q))
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, snap viewstate.Snapshot) {
	data := pageVM{
		BaseVM:        viewdata.NewBaseVM(r, ""),
		Results:       newResultsVM(snap, h.ListSpecialties),
		DeactivateURL: viewURL(snap.ID, "/deactivate"),
		HeartbeatURL:  HeartbeatPath,
		HeartbeatMS:   h.Heartbeat.Milliseconds(),
	}
	w.Header().Set("Cache-Control", "no-store")
	h.Pages.Render(w, r, "advocates_page", data)
}

func (h *Handler) renderResults(w http.ResponseWriter, snap viewstate.Snapshot, clearInput bool) {
	vm := newResultsVM(snap, h.ListSpecialties)
	vm.OOB = true
	vm.ClearInput = clearInput
	w.Header().Set("Cache-Control", "no-store")
	h.Pages.RenderSnippet(w, "advocates_results", vm)
}
