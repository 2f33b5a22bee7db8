package testsupport

import (
	"context"
	"sync"
	"time"
)

// FakeSleeper records requested sleeps and returns immediately. Hook, when
// set, runs on every call and may return an error to stop the caller.
type FakeSleeper struct {
	mu    sync.Mutex
	calls []time.Duration
	Hook  func(call int) error
}

func (s *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.calls = append(s.calls, d)
	call := len(s.calls)
	hook := s.Hook
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if hook != nil {
		return hook(call)
	}
	return nil
}

// Calls returns a copy of the recorded durations.
func (s *FakeSleeper) Calls() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.calls))
	copy(out, s.calls)
	return out
}
