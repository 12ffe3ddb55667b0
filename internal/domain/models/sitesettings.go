// internal/domain/models/sitesettings.go
package models

// SiteSettings holds the display settings shared by every page.
// They are read from configuration at startup.
type SiteSettings struct {
	// Display settings
	SiteName string // Name shown in the page header and <title>

	// Footer
	FooterHTML string // Sanitized HTML shown in the page footer

	// Specialties layout: "inline" joins with ", ", "list" renders one per line
	SpecialtiesLayout string
}

// ListSpecialties reports whether specialties render one per line.
func (s SiteSettings) ListSpecialties() bool {
	return s.SpecialtiesLayout == SpecialtiesLayoutList
}

// DefaultSiteName is the default site name used when none is configured.
const DefaultSiteName = "Solace Advocates"

// Specialties layouts.
const (
	SpecialtiesLayoutInline = "inline"
	SpecialtiesLayoutList   = "list"
)
