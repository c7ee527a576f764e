package actor

import "errors"

// Errors surfaced at the public API boundary. Callers should compare
// against these with errors.Is; wrapped variants add worker/type-key
// context at the call site.
var (
	// ErrActorNotFound is returned by Send, Call, and Broadcast when the
	// message type's type-key has no entry in the registry.
	ErrActorNotFound = errors.New("actor: no registered actor for message type")

	// ErrMailboxFull is returned when the selected actor's mailbox is at
	// capacity.
	ErrMailboxFull = errors.New("actor: mailbox full")

	// ErrNoResponse is returned by Call when the handler produced no
	// reply (or the worker stopped before it could reply).
	ErrNoResponse = errors.New("actor: call received no response")

	// ErrDuplicateActorType is returned by RegisterActor when an
	// actor for the same type-key is already registered on that worker.
	ErrDuplicateActorType = errors.New("actor: duplicate actor type on worker")

	// ErrTooManyWorkers is returned by Engine.Spawn once the configured
	// worker cap is reached.
	ErrTooManyWorkers = errors.New("actor: too many workers")

	// ErrSelfCallDeadlock is returned by CallFrom when the round-robin
	// selection resolves to the caller's own worker, which would block
	// that worker waiting on itself.
	ErrSelfCallDeadlock = errors.New("actor: call would deadlock on the calling worker")

	// ErrWakeFailed names the wake-signal failure kind. The wake signal in
	// this package is a non-blocking send on a buffered channel, which
	// cannot fail, so no code path returns or logs this error.
	ErrWakeFailed = errors.New("actor: worker wake signal failed")

	// ErrEngineNotRunning is returned by Spawn once the engine has left
	// the Setup state, and by Start when the engine was already started
	// or stopped. Send, Call and Broadcast do not check the engine state.
	ErrEngineNotRunning = errors.New("actor: engine is not accepting this operation")
)
