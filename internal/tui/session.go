package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// snapshotMsg carries a published view state into the program.
type snapshotMsg viewstate.Snapshot

// Session owns the terminal's current view activation and forwards every
// snapshot it publishes to the running program.
type Session struct {
	loader viewstate.Loader
	opts   viewstate.Options
	log    *zap.Logger

	mu    sync.Mutex
	ctx   context.Context
	view  *viewstate.View
	unsub func()

	sendMu sync.Mutex
	send   func(tea.Msg)
}

// NewSession returns a Session whose views load through loader and live
// under ctx.
func NewSession(ctx context.Context, loader viewstate.Loader, opts viewstate.Options, logger *zap.Logger) *Session {
	return &Session{
		ctx:    ctx,
		loader: loader,
		opts:   opts,
		log:    logger,
	}
}

// Bind sets where snapshots are delivered, normally tea.Program.Send.
func (s *Session) Bind(send func(tea.Msg)) {
	s.sendMu.Lock()
	s.send = send
	s.sendMu.Unlock()
}

// Activate ends the current view, if any, and starts a new one holding
// query.
func (s *Session) Activate(query string) *viewstate.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.endLocked()

	v := viewstate.Activate(s.ctx, uuid.NewString(), s.loader, s.opts, s.log)
	s.unsub = v.Subscribe(func(snap viewstate.Snapshot) {
		s.deliver(snapshotMsg(snap))
	})
	v.SetQuery(query)
	s.view = v
	return v
}

// View returns the current activation.
func (s *Session) View() *viewstate.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Close deactivates the current view.
func (s *Session) Close() {
	s.mu.Lock()
	s.endLocked()
	s.mu.Unlock()
}

func (s *Session) endLocked() {
	if s.view == nil {
		return
	}
	s.unsub()
	s.view.Deactivate()
	s.log.Debug("view deactivated", zap.String("view", s.view.ID()))
	s.view = nil
	s.unsub = nil
}

// deliver hands msg to the program without blocking the publisher;
// publishing may happen inside Update, where Send would deadlock.
func (s *Session) deliver(msg tea.Msg) {
	s.sendMu.Lock()
	send := s.send
	s.sendMu.Unlock()
	if send == nil {
		return
	}
	go send(msg)
}
