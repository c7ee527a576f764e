package actor

import (
	"fmt"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Handler is a user-supplied function from (actor handle, message) to an
// optional reply value. Declared as a plain func type rather than an
// interface method so the same generic parameters T and R can appear
// together — methods cannot introduce their own type parameters in Go.
type Handler[T Message, R any] func(h *Handle, msg T) fn.Option[R]

// hostedActor is the type-erased interface a Worker uses to host actor
// instances of differing T/R behind one map: a tagged interface standing
// in for a v-table of function pointers plus an opaque self pointer.
type hostedActor interface {
	typeKeyOf() string
	drain(stopped func() bool)
	shutdown()
	enqueueOneWay(msg Message) error
	enqueueCall(msg Message, reply any) error
	bindContext(ctx WorkerContext)
}

// actorInstance is the concrete {type-key, handler, mailbox, handle}
// tuple. It is bound to exactly one worker for its entire lifetime.
type actorInstance[T Message, R any] struct {
	key     string
	handler Handler[T, R]
	mbox    *mailbox[T, R]
	handle  *Handle
}

func newActorInstance[T Message, R any](
	handler Handler[T, R], capacity int, wake chan struct{}, ctx WorkerContext,
) *actorInstance[T, R] {

	alloc := &sync.Pool{New: func() any { return new(R) }}

	return &actorInstance[T, R]{
		key:     typeKey[T](),
		handler: handler,
		mbox:    newMailbox[T, R](capacity, wake),
		handle:  newHandle(ctx, alloc),
	}
}

func (a *actorInstance[T, R]) typeKeyOf() string { return a.key }

// bindContext installs the worker context once the hosting worker is
// assigned a dense id and engine back-reference at Spawn time. Actors are
// registered before that information exists, so the handle starts out
// with a zero WorkerContext and is patched here.
func (a *actorInstance[T, R]) bindContext(ctx WorkerContext) { a.handle.worker = ctx }

func (a *actorInstance[T, R]) enqueueOneWay(msg Message) error {
	typed, ok := msg.(T)
	if !ok {
		return fmt.Errorf("actor: message type mismatch for key %s", a.key)
	}
	return a.mbox.push(oneWay[T, R](typed))
}

func (a *actorInstance[T, R]) enqueueCall(msg Message, reply any) error {
	typed, ok := msg.(T)
	if !ok {
		return fmt.Errorf("actor: message type mismatch for key %s", a.key)
	}
	r, ok := reply.(*Reply[fn.Option[R]])
	if !ok {
		return fmt.Errorf("actor: reply type mismatch for key %s", a.key)
	}
	return a.mbox.push(callEnvelope[T, R](typed, r))
}

// drain pops until the mailbox is empty or stopped reports true, invoking
// the handler once per envelope and posting Call replies. drain must not
// yield mid-envelope — each iteration fully completes one envelope,
// including posting its reply, before popping the next. stopped is
// checked only between envelopes: a stop request lets the currently
// in-flight envelope finish but drops everything queued behind it, which
// the worker then releases via shutdown.
func (a *actorInstance[T, R]) drain(stopped func() bool) {
	for {
		if stopped() {
			return
		}
		env, ok := a.mbox.pop()
		if !ok {
			return
		}
		a.dispatch(env)
	}
}

func (a *actorInstance[T, R]) dispatch(env envelope[T, R]) {
	result := a.handler(a.handle, env.msg)
	if !env.isCall() {
		return
	}
	if result.IsNone() {
		log.Warnf("actor: handler for type %s returned no value for a "+
			"Call, posting a null reply", a.key)
	}
	if !env.reply.Send(result) {
		log.Warnf("actor: reply already consumed for type %s, dropping result", a.key)
	}
}

// shutdown drains whatever remains in the mailbox without invoking the
// handler, posting a null reply to every parked Call envelope so their
// callers unblock instead of waiting forever.
func (a *actorInstance[T, R]) shutdown() {
	for _, env := range a.mbox.drainAll() {
		if !env.isCall() {
			continue
		}
		if !env.reply.Send(fn.None[R]()) {
			log.Warnf("actor: reply already consumed during shutdown for type %s", a.key)
		}
	}
}
