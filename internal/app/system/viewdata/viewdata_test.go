package viewdata

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/advocates/internal/domain/models"
)

func TestNewBaseVM_Defaults(t *testing.T) {
	Init(models.SiteSettings{})
	defer Init(models.SiteSettings{SiteName: models.DefaultSiteName})

	r := httptest.NewRequest("GET", "/?q=ann", nil)
	vm := NewBaseVM(r, "")

	if vm.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q", vm.SiteName)
	}
	if vm.Title != models.DefaultSiteName {
		t.Errorf("Title = %q, want site name", vm.Title)
	}
	if vm.FooterHTML != "" {
		t.Errorf("FooterHTML = %q, want empty", vm.FooterHTML)
	}
}

func TestNewBaseVM_SanitizesFooter(t *testing.T) {
	Init(models.SiteSettings{
		SiteName:   "Directory",
		FooterHTML: `<p>Call us</p><script>alert(1)</script>`,
	})
	defer Init(models.SiteSettings{SiteName: models.DefaultSiteName})

	r := httptest.NewRequest("GET", "/", nil)
	vm := NewBaseVM(r, "Advocates")

	if vm.SiteName != "Directory" || vm.Title != "Advocates" {
		t.Errorf("vm = %+v", vm)
	}
	if strings.Contains(string(vm.FooterHTML), "script") {
		t.Errorf("FooterHTML not sanitized: %q", vm.FooterHTML)
	}
	if !strings.Contains(string(vm.FooterHTML), "Call us") {
		t.Errorf("FooterHTML lost content: %q", vm.FooterHTML)
	}
}
