package service

import (
	"sync"
)

// opGuard is a cooperative Idle/InFlight latch. Begin reports whether
// the Idle -> InFlight transition was taken; a caller that loses the
// race must treat its operation as a no-op rather than queue or error.
type opGuard struct {
	mu       sync.Mutex
	inFlight bool
}

func (g *opGuard) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

func (g *opGuard) End() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}
