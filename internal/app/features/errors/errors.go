// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/advocates/internal/app/system/viewdata"
)

// Page is the view model of the "error_page" template.
type Page struct {
	viewdata.BaseVM
	Heading string
	Message string
	BackURL string
}

// NewPage builds an error page view model. An empty backURL points home.
func NewPage(r *http.Request, heading, msg, backURL string) Page {
	if backURL == "" {
		backURL = "/"
	}
	return Page{
		BaseVM:  viewdata.NewBaseVM(r, heading),
		Heading: heading,
		Message: msg,
		BackURL: backURL,
	}
}

// Handler is the errors feature handler.
// No backend needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders the "page not found" page. Mounted as the router's
// NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "We couldn't find that page.", "/")
}
