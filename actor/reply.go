package actor

import (
	"runtime"
	"sync/atomic"
)

// Reply states: Empty -> Writing -> Ready -> Consumed. Writing, Ready and
// Consumed all reject further Send; Consumed is terminal.
const (
	replyEmpty int32 = iota
	replyWriting
	replyReady
	replyConsumed
)

// Reply is a single-producer, single-consumer one-shot cell that
// transports exactly one value of type T from a handler back to a
// blocked caller. The zero value is an Empty cell ready for use; NewReply
// returns a pointer to one.
type Reply[T any] struct {
	state atomic.Int32
	value atomic.Pointer[T]
}

// NewReply returns an empty, ready-to-use reply cell.
func NewReply[T any]() *Reply[T] {
	return &Reply[T]{}
}

// Send attempts the Empty -> Writing -> Ready transition, storing value.
// Returns false without storing anything if the cell was not Empty.
func (r *Reply[T]) Send(value T) bool {
	if !r.state.CompareAndSwap(replyEmpty, replyWriting) {
		return false
	}
	r.value.Store(&value)
	r.state.Store(replyReady)
	return true
}

// Receive spins (yielding the processor between checks) until the cell
// becomes Ready, then transitions Ready -> Consumed and returns the
// stored value. If the cell is already Consumed it returns immediately
// with ok=false. Callers that cannot tolerate a spin should race Receive
// against ctx.Done() in their own goroutine.
func (r *Reply[T]) Receive() (T, bool) {
	for {
		switch r.state.Load() {
		case replyReady:
			if r.state.CompareAndSwap(replyReady, replyConsumed) {
				v := r.value.Load()
				var zero T
				if v == nil {
					return zero, false
				}
				return *v, true
			}
		case replyConsumed:
			var zero T
			return zero, false
		default:
			runtime.Gosched()
		}
	}
}

// TryReceive is the non-blocking variant of Receive: it returns ok=false
// immediately if the cell is not currently Ready.
func (r *Reply[T]) TryReceive() (T, bool) {
	var zero T
	if !r.state.CompareAndSwap(replyReady, replyConsumed) {
		return zero, false
	}
	v := r.value.Load()
	if v == nil {
		return zero, false
	}
	return *v, true
}

// IsEmpty reports whether the cell has not yet been sent to.
func (r *Reply[T]) IsEmpty() bool { return r.state.Load() == replyEmpty }

// IsReady reports whether a value has been written and not yet consumed.
func (r *Reply[T]) IsReady() bool { return r.state.Load() == replyReady }

// IsConsumed reports whether the single Receive/TryReceive has already
// happened.
func (r *Reply[T]) IsConsumed() bool { return r.state.Load() == replyConsumed }
