package state

import (
	"sync"
	"time"
)

// Snapshot is an immutable view of one store.
type Snapshot[T any] struct {
	Items       []T
	Loading     bool
	Error       string // display message, empty when the last action succeeded
	Offline     bool
	LastUpdated time.Time
}

// store holds the bookkeeping shared by OrderStore and ProductStore. Network
// I/O happens outside the lock; only the collection swap is guarded.
type store[T any] struct {
	mu       sync.RWMutex
	items    []T
	inflight int
	errMsg   string
	offline  bool
	updated  time.Time

	clone   func(T) T
	changes chan struct{}
}

func newStore[T any](clone func(T) T) *store[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &store[T]{clone: clone, changes: make(chan struct{}, 1)}
}

// begin marks an action as in flight.
func (s *store[T]) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.notify()
}

// finish applies fn under the write lock and clears one in-flight action.
func (s *store[T]) finish(fn func()) {
	s.mu.Lock()
	if s.inflight > 0 {
		s.inflight--
	}
	if fn != nil {
		fn()
	}
	s.updated = time.Now()
	s.mu.Unlock()
	s.notify()
}

// notify never blocks; pending signals coalesce into one.
func (s *store[T]) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *store[T]) snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot[T]{
		Items:       s.cloneItems(s.items),
		Loading:     s.inflight > 0,
		Error:       s.errMsg,
		Offline:     s.offline,
		LastUpdated: s.updated,
	}
}

func (s *store[T]) cloneItems(items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	for i, v := range items {
		dup[i] = s.clone(v)
	}
	return dup
}

// find returns the index of the first item matching id, or -1.
func find[T any](items []T, id string, key func(T) string) int {
	for i, v := range items {
		if key(v) == id {
			return i
		}
	}
	return -1
}

func without[T any](items []T, id string, key func(T) string) []T {
	out := items[:0:0]
	for _, v := range items {
		if key(v) != id {
			out = append(out, v)
		}
	}
	return out
}
