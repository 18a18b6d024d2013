package orders

import (
	"sync"
	"time"
)

// idGen hands out millisecond timestamps that are guaranteed strictly
// increasing, so two orders landing in the same millisecond can never
// collide. IDs stay numeric and roughly time-ordered, which the admin list
// relies on for its newest-first sort.
type idGen struct {
	mu   sync.Mutex
	last int64
}

func (g *idGen) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return now
}
