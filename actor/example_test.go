package actor_test

import (
	"fmt"

	"github.com/ardalan-voss/actorcore/actor"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// GreetMsg asks a greeter actor for a greeting.
type GreetMsg struct {
	actor.BaseMessage
	Name string
}

// Example demonstrates the basic lifecycle: build an engine, register an
// actor type on a worker, spawn the worker, then Call it before stopping
// the engine.
func Example() {
	engine := actor.New()
	defer engine.Stop()

	worker := actor.NewWorker()
	err := actor.RegisterActor[GreetMsg, string](
		worker, func(_ *actor.Handle, msg GreetMsg) fn.Option[string] {
			return fn.Some("hello, " + msg.Name)
		},
	)
	if err != nil {
		fmt.Println("register failed:", err)
		return
	}

	if err := engine.Spawn(worker); err != nil {
		fmt.Println("spawn failed:", err)
		return
	}

	greeting, err := actor.Call[GreetMsg, string](engine, GreetMsg{Name: "world"})
	if err != nil {
		fmt.Println("call failed:", err)
		return
	}
	fmt.Println(greeting)

	// Output:
	// hello, world
}
