package hook

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"quasimode/keys"
	"quasimode/log"
)

var (
	ErrAlreadyInstalled = errors.New("keyboard hook already installed")
	ErrNotInstalled     = errors.New("keyboard hook not installed")
	ErrHookFailed       = errors.New("failed to install keyboard hook")
)

// Callback is called by the platform, synchronously and on the interceptor
// goroutine, for every physical key transition. It returns whether the
// keystroke must be swallowed. It must not block.
type Callback func(t Transition) (swallow bool)

// Platform registers the process-wide keyboard hook.
type Platform interface {
	// Install registers callback. It is called on the interceptor goroutine,
	// which stays locked to its OS thread until the pump is uninstalled.
	Install(callback Callback) (Pump, error)
}

// Pump is an installed hook together with the message pump that delivers its
// callbacks.
type Pump interface {
	// Run blocks on the interceptor goroutine until Quit is called.
	Run() error
	// Quit makes Run return. It may be called from any goroutine.
	Quit() error
	// Uninstall unregisters the hook. It is called on the interceptor
	// goroutine after Run returns.
	Uninstall() error
}

// Waker interrupts the consumer's blocking wait.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// interceptor is the state owned by the interceptor goroutine. Nothing else
// touches it.
type interceptor struct {
	machine     Machine
	state       State
	queue       *Queue
	waker       Waker
	passThrough bool
	log         *log.Loggers
}

func (i *interceptor) handle(t Transition) bool {
	if i.passThrough {
		return false
	}

	outcome := i.machine.Step(i.state, t)
	i.state = outcome.Next
	if outcome.Event == nil {
		return outcome.Swallow
	}

	if err := i.queue.Send(*outcome.Event); err != nil {
		i.log.ErrorLog.Printf("failed to send %s, passing all keys through from now on: %v", outcome.Event, err)
		i.passThrough = true
		return false
	}
	i.waker.Wake()
	return true
}

// Handle is an installed interceptor.
type Handle struct {
	pump      Pump
	done      chan struct{}
	runErr    error
	unhookErr error
	once      sync.Once
	log       *log.Loggers
}

// Install starts the interceptor goroutine, registers the hook on it and
// returns once the hook is live. Events are sent on queue, each followed by
// a call to waker.
func Install(platform Platform, modeKey keys.VirtualKey, queue *Queue, waker Waker) (*Handle, error) {
	logger := log.For("hook")
	h := &Handle{done: make(chan struct{}), log: logger}
	installed := make(chan error, 1)

	go func() {
		// The hook belongs to the thread that registered it and is called
		// back only on that thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(h.done)

		icpt := &interceptor{
			machine: Machine{ModeKey: modeKey},
			state:   Idle,
			queue:   queue,
			waker:   waker,
			log:     logger,
		}
		pump, err := platform.Install(icpt.handle)
		if err != nil {
			installed <- fmt.Errorf("%w: %w", ErrHookFailed, err)
			return
		}
		h.pump = pump
		installed <- nil

		logger.InfoLog.Printf("keyboard hook installed, mode key %s", modeKey)
		h.runErr = pump.Run()
		h.unhookErr = pump.Uninstall()
		logger.InfoLog.Printf("keyboard hook uninstalled")
	}()

	if err := <-installed; err != nil {
		<-h.done
		return nil, err
	}
	return h, nil
}

// Uninstall stops the interceptor goroutine and returns only once the hook
// is unregistered. A hook that cannot be torn down is fatal, so failures
// panic. Calling Uninstall again is a no-op.
func (h *Handle) Uninstall() {
	h.once.Do(func() {
		h.log.InfoLog.Printf("uninstalling keyboard hook")
		select {
		case <-h.done:
			// the pump already stopped on its own
		default:
			if err := h.pump.Quit(); err != nil {
				// the pump may have exited between the check and Quit, in
				// which case there is no thread left to signal
				select {
				case <-h.done:
				default:
					panic(fmt.Sprintf("failed to stop keyboard hook pump: %v", err))
				}
			}
			<-h.done
		}

		if h.unhookErr != nil {
			panic(fmt.Sprintf("failed to unregister keyboard hook: %v", h.unhookErr))
		}
		if h.runErr != nil {
			h.log.ErrorLog.Printf("keyboard hook pump stopped with error: %v", h.runErr)
		}
	})
}

// Done is closed when the interceptor goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
