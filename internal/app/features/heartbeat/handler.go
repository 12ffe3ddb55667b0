// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/advocates/internal/app/system/limits"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"go.uber.org/zap"
)

// Views looks up live directory views. Looking a view up marks it as
// recently used.
type Views interface {
	Get(id string) (*viewstate.View, bool)
}

// Handler keeps the views of open pages from being swept as idle.
type Handler struct {
	Views Views
	Log   *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(views Views, logger *zap.Logger) *Handler {
	return &Handler{
		Views: views,
		Log:   logger,
	}
}

// heartbeatRequest is the JSON body for the heartbeat endpoint.
type heartbeatRequest struct {
	View string `json:"view"`
}

type heartbeatResponse struct {
	Alive bool `json:"alive"`
}

// ServeHeartbeat handles POST /api/heartbeat.
// It refreshes the idle timer of the named view and reports whether the
// view is still live. Malformed bodies and unknown views are not errors;
// they report alive=false.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if r.Body != nil {
		body := http.MaxBytesReader(w, r.Body, limits.MaxHeartbeatBody)
		_ = json.NewDecoder(body).Decode(&req) // view stays empty on error
	}

	alive := false
	if req.View != "" {
		v, ok := h.Views.Get(req.View)
		alive = ok && !v.Snapshot().Deactivated
	}
	if !alive {
		h.Log.Debug("heartbeat for unknown view", zap.String("view", req.View))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(heartbeatResponse{Alive: alive})
}
