// Package reporting attaches Sentry context to HTTP requests.
package reporting

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
)

// Middleware gives every request its own Sentry hub carrying the request's
// method, path and filtered headers, and reports panics before passing
// them on.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub := sentry.GetHubFromContext(r.Context())
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
		}

		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("Request", map[string]interface{}{
				"Method":  r.Method,
				"URL":     r.URL.String(),
				"Headers": safeHeaders(r.Header),
			})
			scope.SetTag("http.method", r.Method)
			scope.SetTag("http.path", r.URL.Path)
		})

		defer func() {
			if err := recover(); err != nil {
				hub.RecoverWithContext(r.Context(), err)
				panic(err)
			}
		}()

		next.ServeHTTP(w, r.WithContext(sentry.SetHubOnContext(r.Context(), hub)))
	})
}

func safeHeaders(h http.Header) map[string]interface{} {
	safe := make(map[string]interface{}, len(h))
	for k, v := range h {
		if strings.EqualFold(k, "Authorization") || strings.EqualFold(k, "Cookie") {
			safe[k] = "[FILTERED]"
		} else {
			safe[k] = fmt.Sprint(v)
		}
	}
	return safe
}
