package actor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Worker lifecycle states
const (
	workerUnbound int32 = iota
	workerBound
	workerArmed
	workerRunning
	workerStopped
)

// Worker owns one goroutine, one coalescing wake channel, and a
// name->actor-instance map of the actor types it hosts. register_actor is
// only valid before the worker is spawned; the worker-id and engine
// back-reference are installed by Engine.Spawn at bind time.
type Worker struct {
	// uuid is a log-correlation handle only; routing and the registry
	// use the dense id assigned at bind time.
	uuid string

	id     uint32
	engine *Engine

	wake   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}

	stopOnce sync.Once

	mailboxCapacity int

	// order preserves registration order, which becomes the engine
	// registry's spawn-order invariant for every type-key this worker
	// hosts.
	order  []string
	actors map[string]hostedActor

	state atomic.Int32
}

// WorkerOption configures a Worker at construction time.
type WorkerOption func(*workerConfig)

type workerConfig struct {
	mailboxCapacity int
}

// WithMailboxCapacity overrides the default mailbox capacity (100,
// floored at 64) for every actor registered on this worker.
func WithMailboxCapacity(capacity int) WorkerOption {
	return func(c *workerConfig) { c.mailboxCapacity = capacity }
}

// NewWorker constructs an unbound worker ready to host actor
// registrations.
func NewWorker(opts ...WorkerOption) *Worker {
	cfg := workerConfig{mailboxCapacity: defaultMailboxCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Worker{
		uuid:            uuid.NewString(),
		wake:            make(chan struct{}, 1),
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
		mailboxCapacity: cfg.mailboxCapacity,
		actors:          make(map[string]hostedActor),
	}
}

// RegisterActor hosts an instance of (T, handler) on w. Callable only
// before the worker is spawned; registering a second handler for the
// same message type on the same worker is rejected with
// ErrDuplicateActorType. Implemented as a package-level generic function,
// not a method, since T and R must be inferred independently of Worker's
// own (absent) type parameters.
func RegisterActor[T Message, R any](w *Worker, handler Handler[T, R]) error {
	if w.state.Load() != workerUnbound {
		return fmt.Errorf("actor: %w: worker already bound", ErrDuplicateActorType)
	}

	key := typeKey[T]()
	if _, exists := w.actors[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateActorType, key)
	}

	inst := newActorInstance[T, R](handler, w.mailboxCapacity, w.wake, WorkerContext{})
	w.actors[key] = inst
	w.order = append(w.order, key)

	return nil
}

func (w *Worker) typeKeys() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// bind installs the dense worker id and engine back-reference, patching
// every already-registered actor's handle context. Transitions
// Unbound -> Bound.
func (w *Worker) bind(id uint32, e *Engine) {
	w.id = id
	w.engine = e

	ctx := WorkerContext{workerID: id, engine: e}
	for _, key := range w.order {
		w.actors[key].bindContext(ctx)
	}

	w.state.Store(workerBound)
}

// arm transitions Bound -> Armed: actors are ready, the loop has not yet
// started.
func (w *Worker) arm() {
	w.state.Store(workerArmed)
}

// start launches the event-loop goroutine, transitioning to Running.
func (w *Worker) start() {
	w.state.Store(workerRunning)
	go w.loop()
}

// requestStop closes the worker's stop signal exactly once; safe to call
// multiple times without panicking on repeat calls.
func (w *Worker) requestStop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// join blocks until the worker's loop goroutine has exited.
func (w *Worker) join() {
	<-w.doneCh
}

// loop is the worker's event loop: always drain every hosted actor fully,
// then wait for either a wake signal or a stop request. Draining before
// checking for new wakes (rather than consuming one wake and dispatching
// one actor) closes the lost-wakeup race a push arriving mid-drain would
// otherwise cause — the wake channel's capacity-1 buffer retains that
// push's signal for the next loop iteration regardless of when it lands.
func (w *Worker) loop() {
	defer close(w.doneCh)

	for {
		for _, key := range w.order {
			w.actors[key].drain(w.isStopping)
		}

		select {
		case <-w.stopCh:
			w.shutdownActors()
			w.state.Store(workerStopped)
			return
		case <-w.wake:
		}
	}
}

// isStopping reports whether requestStop has been called. Checked by
// each actor's drain between envelopes so a stop request only lets the
// in-flight envelope finish rather than draining the whole backlog.
func (w *Worker) isStopping() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}

// shutdownActors drains whatever is left in every hosted actor's mailbox
// without invoking handlers, releasing any parked Call callers with a
// null reply instead of leaving them blocked forever.
func (w *Worker) shutdownActors() {
	for _, key := range w.order {
		w.actors[key].shutdown()
	}
}

// dispatchOneWay routes a OneWay envelope to the named actor type.
func (w *Worker) dispatchOneWay(key string, msg Message) error {
	inst, ok := w.actors[key]
	if !ok {
		return ErrActorNotFound
	}
	return inst.enqueueOneWay(msg)
}

// dispatchCall routes a Call envelope to the named actor type.
func (w *Worker) dispatchCall(key string, msg Message, reply any) error {
	inst, ok := w.actors[key]
	if !ok {
		return ErrActorNotFound
	}
	return inst.enqueueCall(msg, reply)
}
