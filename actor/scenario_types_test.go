package actor

import (
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Shared message/state types for the worker- and engine-level scenario
// tests, kept in one file so every test that needs a trivial actor
// doesn't redeclare its own.
//
// Every handler below always returns a present reply, even when a given
// test only exercises it via Send. That lets a test observe an actor's
// otherwise-private state by following up with a direct Call (a "query"
// envelope) instead of reaching into actorInstance internals from
// another goroutine, which the mailbox's FIFO-per-actor ordering
// guarantees is race-free: the query is only dispatched after every
// envelope enqueued ahead of it has already run.

type pingMsg struct {
	BaseMessage
	Query bool
}

type counterState struct{ count int }

func countingPingHandler(h *Handle, msg pingMsg) fn.Option[int] {
	s, ok := HandleState[counterState](h)
	if !ok {
		s = &counterState{}
		h.SetState(s)
	}
	if !msg.Query {
		s.count++
	}
	return fn.Some(s.count)
}

type sumMsg struct {
	BaseMessage
	A, B int
}

func sumHandler(_ *Handle, msg sumMsg) fn.Option[int] {
	return fn.Some(msg.A + msg.B)
}

type appendMsg struct {
	BaseMessage
	Text string
}

type appendState struct{ values []string }

func appendHandler(h *Handle, msg appendMsg) fn.Option[string] {
	s, ok := HandleState[appendState](h)
	if !ok {
		s = &appendState{}
		h.SetState(s)
	}
	if msg.Text != "" {
		s.values = append(s.values, msg.Text)
	}
	return fn.Some(strings.Join(s.values, ","))
}

type slowMsg struct{ BaseMessage }

type gatedMsg struct{ BaseMessage }

// blockFirstThenReply blocks only its first invocation on gate, then
// answers with reply on every call thereafter (including that first one,
// once gate is closed). Used to hold a worker's single actor stuck
// mid-drain deterministically, rather than racing against a sleep: S4's
// mailbox-backpressure test needs the worker to never drain during the
// push burst, and S6/the worker shutdown tests need an actor that is
// definitely still "in flight" when stop is requested.
func blockFirstThenReply[T Message, R any](gate <-chan struct{}, reply R) Handler[T, R] {
	first := true
	return func(_ *Handle, _ T) fn.Option[R] {
		if first {
			first = false
			<-gate
		}
		return fn.Some(reply)
	}
}
