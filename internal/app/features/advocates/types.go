// internal/app/features/advocates/types.go
package advocates

import (
	"net/url"

	"github.com/dalemusser/advocates/internal/app/system/search"
	"github.com/dalemusser/advocates/internal/app/system/viewdata"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/advocates/internal/domain/models"
)

// rowVM is one table row, with every cell already rendered to text.
type rowVM struct {
	Key             string
	FirstName       string
	LastName        string
	City            string
	Degree          string
	Specialties     []string
	SpecialtiesText string
	Years           string
	Phone           string
}

// resultsVM drives the results region and the controls refreshed with it.
type resultsVM struct {
	ViewID string
	Query  string

	// Exactly one of Loading, Failed or (table) applies.
	Loading bool
	Failed  bool
	Error   string
	Rows    []rowVM

	Searching       bool // query narrows the list; drives the live region
	ListSpecialties bool

	ResultsURL string // GET, HTMX partial
	PageURL    string // GET, full page (no-JS form target)
	ClearURL   string // POST, HTMX partial
	ReloadURL  string // GET /, a new activation

	// OOB marks the live region and clear control for out-of-band swaps.
	OOB bool
	// ClearInput also resets the search input out of band.
	ClearInput bool
}

// NoResults reports whether the table shows the "No results found." row.
func (vm resultsVM) NoResults() bool {
	return !vm.Loading && !vm.Failed && len(vm.Rows) == 0
}

type pageVM struct {
	viewdata.BaseVM
	Results       resultsVM
	DeactivateURL string
	HeartbeatURL  string
	HeartbeatMS   int64 // 0 disables the heartbeat
}

func viewURL(id, suffix string) string {
	return "/advocates/" + url.PathEscape(id) + suffix
}

// reloadURL starts a fresh activation, keeping the query.
func reloadURL(q string) string {
	if q == "" {
		return "/"
	}
	return "/?q=" + url.QueryEscape(q)
}

func newResultsVM(s viewstate.Snapshot, listSpecialties bool) resultsVM {
	vm := resultsVM{
		ViewID:          s.ID,
		Query:           s.Query,
		Searching:       search.Active(s.Query),
		ListSpecialties: listSpecialties,
		ResultsURL:      viewURL(s.ID, "/results"),
		PageURL:         viewURL(s.ID, ""),
		ClearURL:        viewURL(s.ID, "/clear"),
		ReloadURL:       reloadURL(s.Query),
	}
	switch s.Phase {
	case viewstate.PhaseLoading:
		vm.Loading = true
	case viewstate.PhaseError:
		vm.Failed = true
		vm.Error = s.Err
	default:
		vm.Rows = toRows(s.Rows)
	}
	return vm
}

func toRows(rows []models.Advocate) []rowVM {
	out := make([]rowVM, 0, len(rows))
	for i, a := range rows {
		out = append(out, rowVM{
			Key:             a.RowKey(i),
			FirstName:       a.FirstName.String,
			LastName:        a.LastName.String,
			City:            a.City.String,
			Degree:          a.Degree.String,
			Specialties:     a.Specialties,
			SpecialtiesText: a.Specialties.Joined(),
			Years:           a.YearsOfExperience.String,
			Phone:           a.PhoneNumber.String,
		})
	}
	return out
}
