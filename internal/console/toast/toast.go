// Package toast holds the transient notifications shown after console
// actions. Entries expire on their own after a fixed delay or can be
// dismissed early.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// DefaultTTL is how long a toast stays up when no override is given
const DefaultTTL = 4500 * time.Millisecond

// Toast is one notification entry
type Toast struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
}

// Queue keeps toasts in insertion order and expires them after the
// configured TTL. Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Toast
	timers map[string]*time.Timer
}

// NewQueue creates a queue; a non-positive ttl falls back to DefaultTTL
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Push appends a toast and schedules its expiry. Returns the assigned id.
func (q *Queue) Push(kind Kind, title, message string) string {
	id := uuid.NewString()

	q.mu.Lock()
	q.items = append(q.items, Toast{ID: id, Kind: kind, Title: title, Message: message})
	q.timers[id] = time.AfterFunc(q.ttl, func() { q.Dismiss(id) })
	q.mu.Unlock()

	return id
}

// Dismiss removes the toast with the given id. Unknown ids are a no-op.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Snapshot returns the live toasts in insertion order
func (q *Queue) Snapshot() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// Close stops all pending expiry timers
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}
