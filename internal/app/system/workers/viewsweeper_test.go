package workers

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func TestViewSweeper_SweepsOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &countingSweeper{}
	w := NewViewSweeper(s, zap.NewNop(), 5*time.Millisecond)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for s.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if s.calls.Load() < 2 {
		t.Errorf("Sweep called %d times, want at least 2", s.calls.Load())
	}
}

func TestViewSweeper_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewViewSweeper(&countingSweeper{}, zap.NewNop(), time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}

func TestViewSweeper_NoSweepAfterStop(t *testing.T) {
	s := &countingSweeper{}
	w := NewViewSweeper(s, zap.NewNop(), time.Millisecond)
	w.Start()
	w.Stop()

	after := s.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if s.calls.Load() != after {
		t.Error("Sweep called after Stop")
	}
}
