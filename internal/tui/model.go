package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/advocates/internal/app/system/search"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
)

const (
	title       = "Solace Advocates"
	placeholder = "Name, city, degree, specialty…"
	noResults   = "No results found."
	reloadHint  = "Press ctrl+r to reload."
	helpLine    = "esc clear • ctrl+c quit"
)

var headers = []string{
	"First Name", "Last Name", "City", "Degree",
	"Specialties", "Years of Experience", "Phone Number",
}

// Model is the bubbletea model of the directory screen.
type Model struct {
	session *Session
	snap    viewstate.Snapshot

	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	listSpecialties bool
	width           int
	quitting        bool
}

// NewModel builds the screen over session's current view, activating one
// with query when there is none.
func NewModel(session *Session, query string, listSpecialties bool) Model {
	v := session.View()
	if v == nil {
		v = session.Activate(query)
	}

	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "Search: "
	ti.SetValue(query)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		session:         session,
		snap:            v.Snapshot(),
		input:           ti,
		spinner:         sp,
		styles:          styles,
		listSpecialties: listSpecialties,
	}
}

// Snapshot returns the state the model last rendered from.
func (m Model) Snapshot() viewstate.Snapshot { return m.snap }

// Query returns the search input's value.
func (m Model) Query() string { return m.input.Value() }

func (m Model) Init() tea.Cmd {
	v := m.session.View()
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if v != nil {
		// picks up a load that finished before the program was bound
		cmds = append(cmds, func() tea.Msg { return snapshotMsg(v.Snapshot()) })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			m.session.Close()
			return m, tea.Quit
		case tea.KeyEsc:
			m.input.SetValue("")
			m.applyQuery()
			return m, nil
		case tea.KeyCtrlR:
			if m.snap.Phase != viewstate.PhaseError {
				return m, nil
			}
			v := m.session.Activate(m.input.Value())
			m.snap = v.Snapshot()
			return m, m.spinner.Tick
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.applyQuery()
		return m, cmd

	case snapshotMsg:
		m.accept(viewstate.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		if m.snap.Phase != viewstate.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyQuery() {
	v := m.session.View()
	if v == nil {
		return
	}
	m.accept(v.SetQuery(m.input.Value()))
}

// accept keeps s when it belongs to the current view and is not older than
// what is already shown.
func (m *Model) accept(s viewstate.Snapshot) {
	if s.ID != m.snap.ID || s.Version < m.snap.Version || s.Deactivated {
		return
	}
	m.snap = s
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Live.Render(liveText(m.snap.Query)))
	b.WriteString("\n\n")

	switch m.snap.Phase {
	case viewstate.PhaseLoading:
		b.WriteString(m.spinner.View() + " Loading…\n")
	case viewstate.PhaseError:
		b.WriteString(m.styles.Error.Render(m.snap.Err))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(reloadHint))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(helpLine))
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) renderTable() string {
	t := newTable("List of advocates", headers)
	for _, a := range m.snap.Rows {
		specialties := a.Specialties.Joined()
		if m.listSpecialties {
			specialties = strings.Join(a.Specialties, "\n")
		}
		t.AddRow(
			a.FirstName.String,
			a.LastName.String,
			a.City.String,
			a.Degree.String,
			specialties,
			a.YearsOfExperience.String,
			a.PhoneNumber.String,
		)
	}
	out := t.View(m.styles)
	if m.snap.NoResults() {
		out += m.styles.Muted.Render(noResults) + "\n"
	}
	return out
}

func liveText(q string) string {
	if !search.Active(q) {
		return ""
	}
	return "Searching for: “" + q + "”"
}
