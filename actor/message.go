package actor

import "reflect"

// Message is the sealed interface every actor message type must embed
// BaseMessage to implement. Sealing it behind an unexported method keeps
// type-keys derivable only from types declared to participate in this
// package's routing.
type Message interface {
	messageMarker()
}

// BaseMessage is embedded by concrete message types to satisfy Message.
//
//	type Deposit struct {
//		actor.BaseMessage
//		Amount int64
//	}
type BaseMessage struct{}

func (BaseMessage) messageMarker() {}

// typeKey derives the stable, process-unique routing key for message type
// T. A named type is keyed by its declaring package's full import path
// plus its name, so two distinct Go types never collide even when their
// packages share a name; unnamed types fall back to reflect's type string.
func typeKey[T Message]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
