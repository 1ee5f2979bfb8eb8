package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/passage-cli/internal/core/domain"
)

// runSlot enforces single-flight execution of a long-running operation and
// carries its cancellation token. Starting while active fails fast with
// domain.ErrAlreadyRunning; the active run is unaffected.
type runSlot struct {
	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
}

// begin claims the slot and returns a derived context carrying the run's
// cancellation token.
func (s *runSlot) begin(parent context.Context) (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil, domain.ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(parent)
	s.active = true
	s.cancel = cancel
	return ctx, nil
}

// end releases the slot.
func (s *runSlot) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.active = false
}

// requestCancel triggers the run's cancellation token.
// Returns false if the slot is idle.
func (s *runSlot) requestCancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// running reports whether the slot is claimed.
func (s *runSlot) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
