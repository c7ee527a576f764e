package actor

import "github.com/lightningnetwork/lnd/fn/v2"

// envelope is the tagged variant over OneWay(T) and Call(T, reply). reply
// is nil for a OneWay envelope; a non-nil reply marks a Call envelope and
// must always be posted to exactly once, even on shutdown.
type envelope[T Message, R any] struct {
	msg   T
	reply *Reply[fn.Option[R]]
}

func oneWay[T Message, R any](msg T) envelope[T, R] {
	return envelope[T, R]{msg: msg}
}

func callEnvelope[T Message, R any](msg T, reply *Reply[fn.Option[R]]) envelope[T, R] {
	return envelope[T, R]{msg: msg, reply: reply}
}

func (e envelope[T, R]) isCall() bool { return e.reply != nil }
