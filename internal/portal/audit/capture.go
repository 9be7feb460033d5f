package audit

import (
	"context"
	"sync"

	"github.com/parkmoor/clubhouse/internal/portal/domain"
)

// CaptureSink collects events in memory. Test double; also usable as a
// null sink when auditing is disabled.
type CaptureSink struct {
	mu     sync.Mutex
	events []domain.LoginEvent

	// Err, when set, is returned from every Record call.
	Err error
}

func (s *CaptureSink) Record(ctx context.Context, ev domain.LoginEvent) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Events returns a copy of all captured events in record order.
func (s *CaptureSink) Events() []domain.LoginEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LoginEvent, len(s.events))
	copy(out, s.events)
	return out
}
