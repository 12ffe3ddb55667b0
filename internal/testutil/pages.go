package testutil

import (
	"html/template"
	"io/fs"
	"net/http"
	"testing"
)

// Pages renders templates parsed from embedded feature filesystems with
// html/template directly, so handler tests can assert on real markup
// without booting the template engine.
type Pages struct {
	t    testing.TB
	tmpl *template.Template
}

// NewPages parses templates/*.gohtml from every filesystem into one
// namespace, the way the shared engine sees them.
func NewPages(t testing.TB, fsys ...fs.FS) *Pages {
	t.Helper()
	tmpl := template.New("pages")
	for _, f := range fsys {
		var err error
		tmpl, err = tmpl.ParseFS(f, "templates/*.gohtml")
		if err != nil {
			t.Fatalf("parse templates: %v", err)
		}
	}
	return &Pages{t: t, tmpl: tmpl}
}

// Render executes the named template.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	p.RenderSnippet(w, name, data)
}

// RenderSnippet executes the named template.
func (p *Pages) RenderSnippet(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.ExecuteTemplate(w, name, data); err != nil {
		p.t.Errorf("render %s: %v", name, err)
	}
}
