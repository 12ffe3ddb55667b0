package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Upstream is a fake advocates API for tests. It serves a fixed status and
// body, counts requests, and can hold requests open until released.
type Upstream struct {
	*httptest.Server

	mu         sync.Mutex
	status     int
	body       string
	hits       int
	lastHeader http.Header
	hold       chan struct{}
}

// NewUpstream starts a fake API answering every request with status and
// body. The server is closed when the test ends.
func NewUpstream(t *testing.T, status int, body string) *Upstream {
	t.Helper()
	u := &Upstream{status: status, body: body}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits++
	u.lastHeader = r.Header.Clone()
	status, body, hold := u.status, u.body, u.hold
	u.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, body)
	}
}

// Set changes the response served to subsequent requests.
func (u *Upstream) Set(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status, u.body = status, body
}

// Hold makes subsequent requests wait until the returned release func is
// called or the client gives up.
func (u *Upstream) Hold() (release func()) {
	ch := make(chan struct{})
	u.mu.Lock()
	u.hold = ch
	u.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			u.mu.Lock()
			u.hold = nil
			u.mu.Unlock()
			close(ch)
		})
	}
}

// Hits returns the number of requests received.
func (u *Upstream) Hits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits
}

// LastHeader returns the headers of the most recent request.
func (u *Upstream) LastHeader() http.Header {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastHeader
}
