package actor

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Engine lifecycle states
const (
	engineSetup int32 = iota
	engineRunning
	engineDraining
	engineTerminated
)

// Engine owns every worker and the global actor-type registry: a mapping
// from a message type's type-key to the ordered list of worker ids
// hosting an actor for that type. It implements round-robin Send/Call and
// the one-to-many Broadcast atop that registry.
type Engine struct {
	mu       sync.RWMutex
	workers  []*Worker
	registry map[string][]uint32

	counter atomic.Uint64
	state   atomic.Int32

	maxWorkers int
	metrics    *Metrics

	terminated chan struct{}
}

// New constructs an engine in the Setup state, ready to accept Spawn
// calls.
func New(opts ...EngineOption) *Engine {
	cfg := engineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Engine{
		registry:   make(map[string][]uint32),
		maxWorkers: cfg.maxWorkers,
		metrics:    cfg.metrics,
		terminated: make(chan struct{}),
	}
}

// Spawn binds w to the engine, assigns it the next dense worker id,
// folds its pre-registered actor types into the registry in spawn order,
// arms it, and starts its goroutine. Permitted only while the engine is
// in Setup; fails with ErrTooManyWorkers once the configured cap (if any)
// is reached.
func (e *Engine) Spawn(w *Worker) error {
	e.mu.Lock()
	if e.state.Load() != engineSetup {
		e.mu.Unlock()
		return ErrEngineNotRunning
	}
	if e.maxWorkers > 0 && len(e.workers) >= e.maxWorkers {
		e.mu.Unlock()
		return ErrTooManyWorkers
	}

	id := uint32(len(e.workers))
	w.bind(id, e)
	w.arm()
	e.workers = append(e.workers, w)

	for _, key := range w.typeKeys() {
		e.registry[key] = append(e.registry[key], id)
	}
	e.mu.Unlock()

	w.start()
	if e.metrics != nil {
		e.metrics.workerSpawned()
	}

	log.Debugf("actor: spawned worker %d (%s) hosting %d actor types",
		id, w.uuid, len(w.order))

	return nil
}

// Start transitions Setup -> Running and blocks until Stop has joined
// every worker. Calling Start more than once, or after Stop, is an
// error.
func (e *Engine) Start() error {
	if !e.state.CompareAndSwap(engineSetup, engineRunning) {
		return fmt.Errorf("%w: engine already started or terminated", ErrEngineNotRunning)
	}

	<-e.terminated
	return nil
}

// Stop requests every worker to exit, joins them, and transitions the
// engine to Terminated. Idempotent: a second call while already
// Draining/Terminated is a no-op.
func (e *Engine) Stop() error {
	switch e.state.Load() {
	case engineTerminated, engineDraining:
		return nil
	}

	if !e.state.CompareAndSwap(engineRunning, engineDraining) &&
		!e.state.CompareAndSwap(engineSetup, engineDraining) {
		// Lost the race to another Stop call; treat as idempotent.
		return nil
	}

	e.mu.RLock()
	workers := make([]*Worker, len(e.workers))
	copy(workers, e.workers)
	e.mu.RUnlock()

	for _, w := range workers {
		w.requestStop()
	}
	for _, w := range workers {
		w.join()
	}

	e.state.Store(engineTerminated)
	if e.metrics != nil {
		e.metrics.allWorkersStopped()
	}
	close(e.terminated)

	log.Debugf("actor: engine terminated, %d workers joined", len(workers))

	return nil
}

// resolveWorker looks up the registry for T's type-key and selects the
// next worker via the engine's single monotonic round-robin counter.
func resolveWorker[T Message](e *Engine) (w *Worker, key string, id uint32, err error) {
	key = typeKey[T]()

	e.mu.RLock()
	defer e.mu.RUnlock()

	list := e.registry[key]
	if len(list) == 0 {
		return nil, key, 0, ErrActorNotFound
	}

	i := e.counter.Add(1) - 1
	id = list[i%uint64(len(list))]
	w = e.workers[id]

	return w, key, id, nil
}

// Send is fire-and-forget, load-balanced delivery of msg to one worker
// hosting an actor for T, chosen by round-robin. Package-level generic
// function, not a method, since Engine itself carries no type
// parameters.
func Send[T Message](e *Engine, msg T) error {
	w, key, _, err := resolveWorker[T](e)
	if err != nil {
		if e.metrics != nil {
			e.metrics.recordSend(err)
		}
		return err
	}

	err = w.dispatchOneWay(key, msg)
	if e.metrics != nil {
		e.metrics.recordSend(err)
	}
	return err
}

// Call is synchronous request/reply: it selects a worker the same way
// Send does, blocks on a one-shot Reply, and returns the handler's value
// or ErrNoResponse if the handler (or a shutting-down worker) produced
// none.
func Call[T Message, R any](e *Engine, msg T) (R, error) {
	return callGuarded[T, R](e, msg, nil)
}

// callGuarded is Call's implementation, parameterised by an optional
// caller worker id. When caller is non-nil (invoked via CallFrom, from
// inside a handler) and round-robin resolves to that same worker, it
// fails fast with ErrSelfCallDeadlock rather than blocking the worker on
// itself.
func callGuarded[T Message, R any](e *Engine, msg T, caller *uint32) (R, error) {
	var zero R

	w, key, id, err := resolveWorker[T](e)
	if err != nil {
		if e.metrics != nil {
			e.metrics.recordCall(err)
		}
		return zero, err
	}

	if caller != nil && *caller == id {
		if e.metrics != nil {
			e.metrics.recordCall(ErrSelfCallDeadlock)
		}
		return zero, ErrSelfCallDeadlock
	}

	val, err := doCall[T, R](w, key, msg)
	if e.metrics != nil {
		e.metrics.recordCall(err)
	}
	return val, err
}

// doCall performs one Call directly against a known worker, bypassing
// round-robin selection. Shared by callGuarded and the AskAll helper,
// which needs to address every worker hosting T rather than one.
func doCall[T Message, R any](w *Worker, key string, msg T) (R, error) {
	var zero R

	reply := NewReply[fn.Option[R]]()
	if err := w.dispatchCall(key, msg, reply); err != nil {
		return zero, err
	}

	opt, ok := reply.Receive()
	if !ok || !opt.IsSome() {
		return zero, ErrNoResponse
	}
	return opt.UnwrapOr(zero), nil
}

// Broadcast enqueues a OneWay envelope on every worker in registry[K], in
// registry (spawn) order. It aborts on the first MailboxFull, identifying
// the failing worker id in the returned error — the partial-failure
// policy recorded in DESIGN.md.
func Broadcast[T Message](e *Engine, msg T) error {
	key := typeKey[T]()

	e.mu.RLock()
	list := e.registry[key]
	if len(list) == 0 {
		e.mu.RUnlock()
		if e.metrics != nil {
			e.metrics.recordBroadcast(ErrActorNotFound)
		}
		return ErrActorNotFound
	}
	targets := make([]*Worker, len(list))
	ids := make([]uint32, len(list))
	for i, wid := range list {
		targets[i] = e.workers[wid]
		ids[i] = wid
	}
	e.mu.RUnlock()

	for i, w := range targets {
		if err := w.dispatchOneWay(key, msg); err != nil {
			wrapped := fmt.Errorf("worker %d: %w", ids[i], err)
			if e.metrics != nil {
				e.metrics.recordBroadcast(err)
			}
			return wrapped
		}
	}

	if e.metrics != nil {
		e.metrics.recordBroadcast(nil)
	}
	return nil
}
