package actor

// Mapped adapts an external producer of In values into the engine's
// routing for Out, transforming each value before sending it onward to
// the engine's load-balanced registry for Out.
type Mapped[In Message, Out Message] struct {
	engine    *Engine
	transform func(In) Out
}

// NewMapped constructs a Mapped adapter that sends transform(in) into e
// via Send whenever Tell is called.
func NewMapped[In Message, Out Message](e *Engine, transform func(In) Out) *Mapped[In, Out] {
	return &Mapped[In, Out]{engine: e, transform: transform}
}

// Tell transforms in and sends the result, fire-and-forget, through the
// engine's round-robin registry for Out.
func (m *Mapped[In, Out]) Tell(in In) error {
	return Send(m.engine, m.transform(in))
}
