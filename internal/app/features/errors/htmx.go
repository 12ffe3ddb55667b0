// internal/app/features/errors/htmx.go
package errors

import "net/http"

// IsHTMX reports whether r was issued by HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") != ""
}

// HTMXRedirect sends the browser to url. HTMX requests get an HX-Redirect
// header so the whole page navigates instead of swapping a fragment; other
// requests get a 303.
func HTMXRedirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
