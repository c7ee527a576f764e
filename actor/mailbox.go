package actor

import (
	"sync"

	"github.com/gammazero/deque"
)

// defaultMailboxCapacity is the static 100-slot FIFO depth used when a
// worker doesn't override it.
const defaultMailboxCapacity = 100

// minMailboxCapacity is the floor enforced regardless of configuration.
const minMailboxCapacity = 64

// mailbox is the bounded FIFO queue of envelopes local to one actor
// instance. Single-reader (the actor's drain, on its worker goroutine),
// multiple-writer (any goroutine may push). Appending signals the
// owning worker's wake channel before returning.
type mailbox[T Message, R any] struct {
	mu       sync.Mutex
	q        deque.Deque[envelope[T, R]]
	capacity int
	wake     chan struct{}
}

func newMailbox[T Message, R any](capacity int, wake chan struct{}) *mailbox[T, R] {
	if capacity <= 0 {
		capacity = defaultMailboxCapacity
	}
	if capacity < minMailboxCapacity {
		capacity = minMailboxCapacity
	}
	return &mailbox[T, R]{capacity: capacity, wake: wake}
}

// push appends env at the tail, failing with ErrMailboxFull at capacity.
// On success it signals the worker's wake channel (coalescing: the
// channel has capacity 1 and a non-blocking send, so a worker already
// armed to wake is not redundantly notified).
func (m *mailbox[T, R]) push(env envelope[T, R]) error {
	m.mu.Lock()
	if m.q.Len() >= m.capacity {
		m.mu.Unlock()
		return ErrMailboxFull
	}
	m.q.PushBack(env)
	m.mu.Unlock()

	signalWake(m.wake)
	return nil
}

// pop removes and returns the head envelope, or ok=false if empty.
func (m *mailbox[T, R]) pop() (envelope[T, R], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.q.Len() == 0 {
		var zero envelope[T, R]
		return zero, false
	}
	return m.q.PopFront(), true
}

// drainAll removes and returns every remaining envelope, in FIFO order.
// Used by worker shutdown to unblock any parked Call callers.
func (m *mailbox[T, R]) drainAll() []envelope[T, R] {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]envelope[T, R], 0, m.q.Len())
	for m.q.Len() > 0 {
		out = append(out, m.q.PopFront())
	}
	return out
}

func (m *mailbox[T, R]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.Len()
}

// signalWake performs a non-blocking, coalescing signal: a full channel
// means a wake is already pending, so the send is simply dropped rather
// than blocking the pusher.
func signalWake(wake chan struct{}) {
	select {
	case wake <- struct{}{}:
	default:
	}
}
