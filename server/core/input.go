package core

import (
	"sync"

	"golang.org/x/time/rate"
)

// InputGate throttles PlayerInput per client before it reaches the command
// queue. Router callbacks call Allow from necs goroutines.
type InputGate struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewInputGate(perSecond float64, burst int) *InputGate {
	if burst < 1 {
		burst = 1
	}
	return &InputGate{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether clientID may send another input now.
func (g *InputGate) Allow(clientID string) bool {
	g.mu.Lock()
	l, ok := g.limiters[clientID]
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters[clientID] = l
	}
	g.mu.Unlock()
	return l.Allow()
}

// Forget drops the limiter of a disconnected client.
func (g *InputGate) Forget(clientID string) {
	g.mu.Lock()
	delete(g.limiters, clientID)
	g.mu.Unlock()
}

// staleSequence reports whether seq was already applied. Sequence zero
// restarts the counter after a client reconnects.
func staleSequence(last, seq uint32) bool {
	return seq != 0 && seq <= last
}
