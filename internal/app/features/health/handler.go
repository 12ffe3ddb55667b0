package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/advocates/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger checks that the advocates API answers. *advocateapi.Client
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ViewCounter reports how many directory views are live.
// *viewstate.Registry satisfies it.
type ViewCounter interface {
	Len() int
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	API   Pinger
	Views ViewCounter
	Log   *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(api Pinger, views ViewCounter, logger *zap.Logger) *Handler {
	return &Handler{
		API:   api,
		Views: views,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string `json:"status"`
	Upstream    string `json:"upstream"`
	ActiveViews int    `json:"active_views"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "upstream":"reachable", "active_views":3 }
//
// When the advocates API does not answer: 503 and
//
//	{ "status":"error", "upstream":"unreachable", "message":"Advocates API unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "advocates API ping")
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Upstream: "reachable",
	}
	if h.Views != nil {
		resp.ActiveViews = h.Views.Len()
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: advocates API ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Upstream = "unreachable"
		resp.Message = "Advocates API unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
