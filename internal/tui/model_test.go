package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/advocates/internal/domain/models"
	"github.com/dalemusser/advocates/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const rajPatel = `{"id":"b2","firstName":"Raj","lastName":"Patel","city":"New York","degree":"PhD","specialties":["Trauma","Grief"],"yearsOfExperience":"12","phoneNumber":5551112222}`

func staticLoader(rows []models.Advocate, err error) viewstate.Loader {
	return viewstate.LoaderFunc(func(ctx context.Context) ([]models.Advocate, error) {
		return rows, err
	})
}

func newSession(loader viewstate.Loader) *Session {
	return NewSession(context.Background(), loader, viewstate.Options{}, zap.NewNop())
}

// settled waits for the current load and feeds its result to m the way the
// program would.
func settled(t *testing.T, m Model) Model {
	t.Helper()
	v := m.session.View()
	require.NotNil(t, v)
	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
	}
	updated, _ := m.Update(snapshotMsg(v.Snapshot()))
	return updated.(Model)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestModel_Loading(t *testing.T) {
	release := make(chan struct{})
	loader := viewstate.LoaderFunc(func(ctx context.Context) ([]models.Advocate, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return nil, nil
	})
	s := newSession(loader)
	defer s.Close()
	defer close(release)

	m := NewModel(s, "", false)

	assert.Equal(t, viewstate.PhaseLoading, m.Snapshot().Phase)
	assert.Contains(t, m.View(), "Loading…")
	assert.NotContains(t, m.View(), "First Name")
}

func TestModel_Populated(t *testing.T) {
	rows := testutil.Advocates(t, testutil.AnnLee, rajPatel)
	s := newSession(staticLoader(rows, nil))
	defer s.Close()

	m := settled(t, NewModel(s, "", false))
	view := m.View()

	assert.Equal(t, viewstate.PhaseReady, m.Snapshot().Phase)
	for _, h := range headers {
		assert.Contains(t, view, h)
	}
	assert.Contains(t, view, "Ann")
	assert.Contains(t, view, "New York")
	assert.Contains(t, view, "Trauma, Grief")
	assert.Contains(t, view, "5551112222")
	assert.NotContains(t, view, "Loading…")
	assert.NotContains(t, view, noResults)
	assert.NotContains(t, view, "Searching for")
}

func TestModel_SpecialtiesList(t *testing.T) {
	rows := testutil.Advocates(t, rajPatel)
	s := newSession(staticLoader(rows, nil))
	defer s.Close()

	m := settled(t, NewModel(s, "", true))

	assert.NotContains(t, m.View(), "Trauma, Grief")
	assert.Contains(t, m.View(), "Trauma")
	assert.Contains(t, m.View(), "Grief")
}

func TestModel_TypingFilters(t *testing.T) {
	var calls atomic.Int32
	rows := testutil.Advocates(t, testutil.AnnLee, rajPatel)
	loader := viewstate.LoaderFunc(func(ctx context.Context) ([]models.Advocate, error) {
		calls.Add(1)
		return rows, nil
	})
	s := newSession(loader)
	defer s.Close()

	m := settled(t, NewModel(s, "", false))
	m = typeText(m, "york")

	assert.Equal(t, "york", m.Query())
	assert.Equal(t, "york", m.Snapshot().Query)
	require.Len(t, m.Snapshot().Rows, 1)
	assert.Equal(t, "Raj", m.Snapshot().Rows[0].FirstName.String)
	assert.Contains(t, m.View(), "Searching for: “york”")
	assert.NotContains(t, m.View(), "Austin")
	assert.Equal(t, int32(1), calls.Load(), "typing must not reload")
}

func TestModel_WhitespaceQueryNotAnnounced(t *testing.T) {
	s := newSession(staticLoader(testutil.Advocates(t, testutil.AnnLee, rajPatel), nil))
	defer s.Close()

	m := settled(t, NewModel(s, "", false))
	m = typeText(m, "  ")

	assert.Equal(t, "  ", m.Snapshot().Query)
	assert.Len(t, m.Snapshot().Rows, 2)
	assert.NotContains(t, m.View(), "Searching for")
}

func TestModel_NoResults(t *testing.T) {
	s := newSession(staticLoader(testutil.Advocates(t, testutil.AnnLee), nil))
	defer s.Close()

	m := settled(t, NewModel(s, "zzz", false))

	assert.True(t, m.Snapshot().NoResults())
	assert.Contains(t, m.View(), noResults)
	assert.Contains(t, m.View(), "First Name")
}

func TestModel_EmptyListing(t *testing.T) {
	s := newSession(staticLoader(nil, nil))
	defer s.Close()

	m := settled(t, NewModel(s, "", false))

	assert.Contains(t, m.View(), noResults)
}

func TestModel_EscClears(t *testing.T) {
	s := newSession(staticLoader(testutil.Advocates(t, testutil.AnnLee, rajPatel), nil))
	defer s.Close()

	m := settled(t, NewModel(s, "ann", false))
	require.Len(t, m.Snapshot().Rows, 1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	assert.Equal(t, "", m.Query())
	assert.Equal(t, "", m.Snapshot().Query)
	assert.Len(t, m.Snapshot().Rows, 2)
	assert.NotContains(t, m.View(), "Searching for")
}

func TestModel_ErrorAndReload(t *testing.T) {
	var calls atomic.Int32
	rows := testutil.Advocates(t, testutil.AnnLee)
	loader := viewstate.LoaderFunc(func(ctx context.Context) ([]models.Advocate, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("boom")
		}
		return rows, nil
	})
	s := newSession(loader)
	defer s.Close()

	m := settled(t, NewModel(s, "ann", false))
	first := m.Snapshot().ID

	assert.Equal(t, viewstate.PhaseError, m.Snapshot().Phase)
	assert.Contains(t, m.View(), "Failed to load advocates")
	assert.Contains(t, m.View(), reloadHint)
	assert.NotContains(t, m.View(), "First Name")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)
	assert.NotNil(t, cmd)
	assert.NotEqual(t, first, m.Snapshot().ID)

	m = settled(t, m)
	assert.Equal(t, viewstate.PhaseReady, m.Snapshot().Phase)
	assert.Equal(t, "ann", m.Snapshot().Query)
	assert.Len(t, m.Snapshot().Rows, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestModel_ReloadIgnoredWhenReady(t *testing.T) {
	var calls atomic.Int32
	loader := viewstate.LoaderFunc(func(ctx context.Context) ([]models.Advocate, error) {
		calls.Add(1)
		return nil, nil
	})
	s := newSession(loader)
	defer s.Close()

	m := settled(t, NewModel(s, "", false))
	id := m.Snapshot().ID

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	assert.Equal(t, id, m.Snapshot().ID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestModel_StaleSnapshotsIgnored(t *testing.T) {
	s := newSession(staticLoader(testutil.Advocates(t, testutil.AnnLee), nil))
	defer s.Close()

	m := settled(t, NewModel(s, "", false))
	current := m.Snapshot()

	older := current
	older.Version--
	older.Phase = viewstate.PhaseLoading
	updated, _ := m.Update(snapshotMsg(older))
	m = updated.(Model)
	assert.Equal(t, viewstate.PhaseReady, m.Snapshot().Phase)

	foreign := current
	foreign.ID = "other"
	foreign.Version += 10
	foreign.Rows = nil
	updated, _ = m.Update(snapshotMsg(foreign))
	m = updated.(Model)
	assert.Len(t, m.Snapshot().Rows, 1)
}

func TestModel_CtrlCQuitsAndDeactivates(t *testing.T) {
	s := newSession(staticLoader(nil, nil))
	m := settled(t, NewModel(s, "", false))
	v := s.View()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, v.Snapshot().Deactivated)
	assert.Nil(t, s.View())
	assert.Equal(t, "", m.View())
}

func TestModel_WindowSize(t *testing.T) {
	s := newSession(staticLoader(nil, nil))
	defer s.Close()

	m := NewModel(s, "", false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, updated.(Model).width)
}

func TestSession_DeliversSnapshots(t *testing.T) {
	got := make(chan tea.Msg, 8)
	s := newSession(staticLoader(testutil.Advocates(t, testutil.AnnLee), nil))
	s.Bind(func(msg tea.Msg) { got <- msg })
	defer s.Close()

	v := s.Activate("")

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-got:
			snap, ok := msg.(snapshotMsg)
			require.True(t, ok, "unexpected message %T", msg)
			require.Equal(t, v.ID(), snap.ID)
			if snap.Phase == viewstate.PhaseReady {
				assert.Len(t, snap.Rows, 1)
				return
			}
		case <-deadline:
			t.Fatal("no ready snapshot delivered")
		}
	}
}

func TestSession_ActivateReplacesView(t *testing.T) {
	s := newSession(staticLoader(nil, nil))
	defer s.Close()

	first := s.Activate("")
	second := s.Activate("q")

	assert.True(t, first.Snapshot().Deactivated)
	assert.False(t, second.Snapshot().Deactivated)
	assert.Equal(t, "q", second.Snapshot().Query)
	assert.Same(t, second, s.View())
}

func TestTable_View(t *testing.T) {
	tbl := newTable("Caption", []string{"Col1", "Col2"})
	tbl.AddRow("Row1Col1", "a\nb")

	view := tbl.View(DefaultStyles())

	assert.Contains(t, view, "Caption")
	assert.Contains(t, view, "Col1")
	assert.Contains(t, view, "Row1Col1")
	assert.Contains(t, view, "b")
}
