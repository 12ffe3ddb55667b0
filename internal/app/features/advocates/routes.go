// internal/app/features/advocates/routes.go
package advocates

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for an existing view. Mount it under
// /advocates; the activation route (GET /) is registered by the caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.ServePage)
	r.Get("/{id}/results", h.ServeResults)
	r.Post("/{id}/clear", h.HandleClear)
	r.Post("/{id}/deactivate", h.HandleDeactivate)
	return r
}
