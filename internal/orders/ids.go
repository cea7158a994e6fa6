package orders

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator hands out millisecond-timestamp ids that never repeat within
// the process, even when two calls land in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator returns a generator backed by the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the next id.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	clock := g.now
	if clock == nil {
		clock = time.Now
	}
	candidate := clock().UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	g.last = candidate
	return strconv.FormatInt(candidate, 10)
}
