// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := NewPage(r, title, msg, backURL)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}

// RenderNotFound shows a friendly "not found" page with a message.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusNotFound, "Not found", msg, backURL)
}
