package hook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"quasimode/eventloop"
	"quasimode/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPlatform remembers every transition in the order the callback saw
// it, which is the order events are emitted in.
type recordingPlatform struct {
	*Simulator
	mu   sync.Mutex
	seen []Transition
}

func (r *recordingPlatform) Install(callback Callback) (Pump, error) {
	return r.Simulator.Install(func(t Transition) bool {
		r.mu.Lock()
		r.seen = append(r.seen, t)
		r.mu.Unlock()
		return callback(t)
	})
}

func (r *recordingPlatform) transitions() []Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Transition(nil), r.seen...)
}

type failingPlatform struct{}

func (failingPlatform) Install(Callback) (Pump, error) {
	return nil, errors.New("access denied")
}

// vanishingPump stops on its own as soon as Quit is called and then reports
// that its thread could not be signalled, like a posted quit message racing
// the pump's exit.
type vanishingPump struct {
	stop chan struct{}
	done <-chan struct{}
}

func (p *vanishingPump) Install(Callback) (Pump, error) { return p, nil }
func (p *vanishingPump) Run() error                     { <-p.stop; return nil }
func (p *vanishingPump) Uninstall() error               { return nil }

func (p *vanishingPump) Quit() error {
	close(p.stop)
	<-p.done
	return errors.New("invalid thread id")
}

func drainAll(q *Queue) []Event {
	var events []Event
	for {
		e, ok, err := q.TryReceive()
		if !ok || err != nil {
			return events
		}
		events = append(events, e)
	}
}

func TestInterceptorDeliversEvents(t *testing.T) {
	sim := NewSimulator()
	queue := NewQueue()
	var wakes int
	var mu sync.Mutex
	waker := WakerFunc(func() {
		mu.Lock()
		wakes++
		mu.Unlock()
	})

	h, err := Install(sim, keys.VKCapital, queue, waker)
	require.NoError(t, err)
	defer h.Uninstall()

	a := keys.VirtualKey('A')
	for _, tr := range []struct {
		t       Transition
		swallow bool
	}{
		{down(a), false},
		{down(keys.VKCapital), true},
		{down(keys.VKCapital), true},
		{down(a), true},
		{up(a), false},
		{up(keys.VKCapital), true},
		{up(a), false},
	} {
		swallowed, err := sim.Feed(tr.t)
		require.NoError(t, err)
		assert.Equal(t, tr.swallow, swallowed, "transition %+v", tr.t)
	}

	assert.Equal(t, []Event{
		{Kind: ModeStart},
		{Kind: Keypress, Key: a},
		{Kind: ModeEnd},
	}, drainAll(queue))

	mu.Lock()
	assert.Equal(t, 3, wakes)
	mu.Unlock()
}

func TestInstallFailure(t *testing.T) {
	_, err := Install(failingPlatform{}, keys.VKCapital, NewQueue(), WakerFunc(func() {}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHookFailed))
}

func TestInstallTwice(t *testing.T) {
	sim := NewSimulator()
	h, err := Install(sim, keys.VKCapital, NewQueue(), WakerFunc(func() {}))
	require.NoError(t, err)
	defer h.Uninstall()

	_, err = Install(sim, keys.VKCapital, NewQueue(), WakerFunc(func() {}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyInstalled))
}

func TestSendFailureDegradesToPassThrough(t *testing.T) {
	sim := NewSimulator()
	queue := NewQueue()
	h, err := Install(sim, keys.VKCapital, queue, WakerFunc(func() {}))
	require.NoError(t, err)
	defer h.Uninstall()

	queue.Close()

	swallowed, err := sim.Feed(down(keys.VKCapital))
	require.NoError(t, err)
	assert.False(t, swallowed)

	// nothing is eaten once events can no longer be reported
	for _, tr := range []Transition{down(keys.VKCapital), down(keys.VirtualKey('A')), up(keys.VKCapital)} {
		swallowed, err := sim.Feed(tr)
		require.NoError(t, err)
		assert.False(t, swallowed)
	}
}

func TestUninstallIsBounded(t *testing.T) {
	for i := 0; i < 20; i++ {
		sim := NewSimulator()
		h, err := Install(sim, keys.VKCapital, NewQueue(), WakerFunc(func() {}))
		require.NoError(t, err)
		require.True(t, sim.Installed())

		_, err = sim.Feed(down(keys.VKCapital))
		require.NoError(t, err)

		finished := make(chan struct{})
		go func() {
			h.Uninstall()
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(2 * time.Second):
			t.Fatal("uninstall did not finish in time")
		}

		// the hook is gone once Uninstall returns
		assert.False(t, sim.Installed())
		_, err = sim.Feed(up(keys.VKCapital))
		assert.ErrorIs(t, err, ErrNotInstalled)

		// a second call is harmless
		h.Uninstall()
	}
}

func TestEventOrdering(t *testing.T) {
	const producers = 4
	const perProducer = 1000

	for run := 0; run < 5; run++ {
		t.Run(fmt.Sprintf("run %d", run), func(t *testing.T) {
			platform := &recordingPlatform{Simulator: NewSimulator()}
			queue := NewQueue()
			loop := eventloop.New()

			h, err := Install(platform, keys.VKCapital, queue, loop)
			require.NoError(t, err)
			defer h.Uninstall()

			var received []Event
			consumerDone := make(chan error, 1)
			go func() {
				consumerDone <- loop.Run(context.Background(), func() (bool, error) {
					for {
						e, ok, err := queue.TryReceive()
						if err != nil {
							return false, err
						}
						if !ok {
							return false, nil
						}
						received = append(received, e)
						if e.Kind == ModeEnd {
							return true, nil
						}
					}
				})
			}()

			_, err = platform.Feed(down(keys.VKCapital))
			require.NoError(t, err)

			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perProducer; i++ {
						key := keys.VKA + keys.VirtualKey((p*perProducer+i)%26)
						if _, err := platform.Feed(down(key)); err != nil {
							t.Errorf("feed failed: %v", err)
							return
						}
						if _, err := platform.Feed(up(key)); err != nil {
							t.Errorf("feed failed: %v", err)
							return
						}
					}
				}(p)
			}
			wg.Wait()

			_, err = platform.Feed(up(keys.VKCapital))
			require.NoError(t, err)

			select {
			case err := <-consumerDone:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("consumer did not see ModeEnd")
			}

			_, expected, _ := runMachine(Machine{ModeKey: keys.VKCapital}, platform.transitions())
			require.Len(t, expected, producers*perProducer+2)
			assert.Equal(t, expected, received)
		})
	}
}

func TestQueueCloseKeepsPendingEvents(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Send(Event{Kind: ModeStart}))
	q.Close()

	assert.ErrorIs(t, q.Send(Event{Kind: ModeEnd}), ErrQueueClosed)

	e, ok, err := q.TryReceive()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ModeStart, e.Kind)

	_, ok, err = q.TryReceive()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestUninstallAfterPumpExited(t *testing.T) {
	pump := &vanishingPump{stop: make(chan struct{})}
	h, err := Install(pump, keys.VKCapital, NewQueue(), WakerFunc(func() {}))
	require.NoError(t, err)
	pump.done = h.Done()

	assert.NotPanics(t, h.Uninstall)
	select {
	case <-h.Done():
	default:
		t.Fatal("interceptor goroutine still running")
	}
}
