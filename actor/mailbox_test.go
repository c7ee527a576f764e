package actor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type mboxTestMsg struct {
	BaseMessage
	value int
}

func TestMailboxPushPopFIFO(t *testing.T) {
	t.Parallel()

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](0, wake)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: i})))
	}

	for i := 0; i < 5; i++ {
		env, ok := m.pop()
		require.True(t, ok)
		require.Equal(t, i, env.msg.value)
	}

	_, ok := m.pop()
	require.False(t, ok)
}

func TestMailboxPushSignalsWake(t *testing.T) {
	t.Parallel()

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](0, wake)

	require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: 1})))

	select {
	case <-wake:
	default:
		t.Fatal("expected wake channel to be signalled")
	}
}

func TestMailboxWakeCoalesces(t *testing.T) {
	t.Parallel()

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](0, wake)

	require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: 1})))
	require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: 2})))

	// Both pushes happened before anything drained the wake channel; it
	// must still hold exactly one pending signal, not block the second
	// push.
	require.Equal(t, 1, len(wake))
}

// TestMailboxCapacityEnforced is scenario S4: at capacity, push fails
// with ErrMailboxFull; below capacity it always succeeds.
func TestMailboxCapacityEnforced(t *testing.T) {
	t.Parallel()

	const capacity = 64
	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](capacity, wake)

	for i := 0; i < capacity; i++ {
		require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: i})))
	}

	err := m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: capacity}))
	require.ErrorIs(t, err, ErrMailboxFull)
}

func TestMailboxCapacityFloor(t *testing.T) {
	t.Parallel()

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](1, wake)
	require.Equal(t, minMailboxCapacity, m.capacity)
}

func TestMailboxDrainAllReturnsEverything(t *testing.T) {
	t.Parallel()

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](0, wake)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.push(oneWay[mboxTestMsg, int](mboxTestMsg{value: i})))
	}

	drained := m.drainAll()
	require.Len(t, drained, 3)
	require.Equal(t, 0, m.len())
}

// TestMailboxConcurrentProducersPreserveEachProducerOrder is testable
// property 2: for each (producer, actor) pair, the actor observes that
// producer's envelopes in that producer's own submission order.
func TestMailboxConcurrentProducersPreserveEachProducerOrder(t *testing.T) {
	t.Parallel()

	const producers = 4
	const perProducer = 50

	wake := make(chan struct{}, 1)
	m := newMailbox[mboxTestMsg, int](producers*perProducer, wake)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				require.NoError(t, m.push(oneWay[mboxTestMsg, int](
					mboxTestMsg{value: p*perProducer + i},
				)))
			}
		}(p)
	}
	wg.Wait()

	lastSeen := make([]int, producers)
	for i := range lastSeen {
		lastSeen[i] = -1
	}

	for {
		env, ok := m.pop()
		if !ok {
			break
		}
		p := env.msg.value / perProducer
		i := env.msg.value % perProducer
		require.Equal(t, lastSeen[p]+1, i)
		lastSeen[p] = i
	}

	for p := 0; p < producers; p++ {
		require.Equal(t, perProducer-1, lastSeen[p])
	}
}
