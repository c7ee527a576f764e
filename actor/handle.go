package actor

import "sync"

// WorkerContext is the read-only context shared with every actor hosted
// on a worker: its dense id and a back-reference to the owning engine.
// The raw engine reference is sound because the engine outlives every
// worker and teardown is top-down (engine last).
type WorkerContext struct {
	workerID uint32
	engine   *Engine
}

// WorkerID returns the dense worker id in [0, N) assigned at Spawn.
func (w WorkerContext) WorkerID() uint32 { return w.workerID }

// Engine returns the back-reference installed when the worker was spawned.
func (w WorkerContext) Engine() *Engine { return w.engine }

// Handle is the actor-facing API passed into every handler invocation: it
// exposes the worker context, a scratch allocator for reply payloads, and
// the actor's own opaque user-state slot. Go has no manual allocator, so
// Allocator is realized as a sync.Pool scratch space handlers may use for
// payloads that must outlive the call, rather than a literal arena.
type Handle struct {
	worker WorkerContext
	alloc  *sync.Pool
	state  any
}

func newHandle(ctx WorkerContext, alloc *sync.Pool) *Handle {
	return &Handle{worker: ctx, alloc: alloc}
}

// Worker returns this actor's worker context.
func (h *Handle) Worker() WorkerContext { return h.worker }

// Allocator returns the scratch pool handlers may use for reply payloads.
func (h *Handle) Allocator() *sync.Pool { return h.alloc }

// SetState installs the actor's user-state slot. Sound to call only from
// inside the handler; handlers own this slot exclusively.
func (h *Handle) SetState(s any) { h.state = s }

// ResetState clears the user-state slot.
func (h *Handle) ResetState() { h.state = nil }

// RawState returns the opaque, type-erased state slot.
func (h *Handle) RawState() any { return h.state }

// HandleState type-asserts the actor's state slot to *S. Implemented as a
// package-level generic function, not a method, because Go methods cannot
// carry their own type parameters independent of the receiver's.
func HandleState[S any](h *Handle) (*S, bool) {
	s, ok := h.state.(*S)
	return s, ok
}

// SendFrom is the handler's convenience re-entry into the engine for
// fire-and-forget messages. It routes through the engine's load-balanced
// registry, the same as a top-level Send.
func SendFrom[T Message](h *Handle, msg T) error {
	return Send(h.worker.engine, msg)
}

// CallFrom is the handler's convenience re-entry into the engine for
// synchronous request/reply. If round-robin selection would resolve to
// the calling handler's own worker, it fails fast with
// ErrSelfCallDeadlock instead of blocking that worker on itself.
func CallFrom[T Message, R any](h *Handle, msg T) (R, error) {
	return callGuarded[T, R](h.worker.engine, msg, &h.worker.workerID)
}
