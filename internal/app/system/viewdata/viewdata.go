// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/dalemusser/advocates/internal/app/system/htmlsanitize"
	"github.com/dalemusser/advocates/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site settings (from configuration)
	SiteName   string
	FooterHTML template.HTML

	// Page context
	Title       string
	CurrentPath string
}

var (
	mu       sync.RWMutex
	settings = models.SiteSettings{SiteName: models.DefaultSiteName}
)

// Init sets the site settings used by every page.
// Call this once at startup from bootstrap.
func Init(s models.SiteSettings) {
	mu.Lock()
	defer mu.Unlock()
	settings = s
}

// Settings returns the site settings set by Init.
func Settings() models.SiteSettings {
	mu.RLock()
	defer mu.RUnlock()
	return settings
}

// NewBaseVM creates a fully populated BaseVM for a page.
// The footer is sanitized here so templates can render it unescaped.
func NewBaseVM(r *http.Request, title string) BaseVM {
	settings := Settings()
	siteName := settings.SiteName
	if siteName == "" {
		siteName = models.DefaultSiteName
	}
	if title == "" {
		title = siteName
	}
	return BaseVM{
		SiteName:    siteName,
		FooterHTML:  htmlsanitize.PrepareForDisplay(settings.FooterHTML),
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
	}
}
