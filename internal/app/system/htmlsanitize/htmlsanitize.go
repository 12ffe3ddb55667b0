// Package htmlsanitize cleans the operator-supplied site footer before it is
// rendered unescaped.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// footerPolicy allows inline text, links and line breaks. Everything else is
// dropped, along with event handlers and non-http(s)/mailto URLs.
func footerPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "span", "strong", "em", "small")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		policy = p
	})
	return policy
}

func isPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

func plainTextToHTML(s string) string {
	escaped := html.EscapeString(s)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay accepts the footer as plain text or HTML and returns
// markup that is safe to render. Plain text is escaped and its newlines
// become <br>.
func PrepareForDisplay(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if isPlainText(s) {
		return template.HTML(plainTextToHTML(s))
	}
	return template.HTML(footerPolicy().Sanitize(s))
}
