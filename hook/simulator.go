package hook

import (
	"sync"
)

type feedRequest struct {
	transition Transition
	reply      chan bool
}

// Simulator is a Platform with no operating system behind it. Transitions are
// injected with Feed and delivered to the callback on the interceptor
// goroutine, the way a real hook's callbacks arrive on its own thread.
type Simulator struct {
	mu   sync.Mutex
	pump *simulatedPump
}

var _ Platform = (*Simulator)(nil)

func NewSimulator() *Simulator {
	return &Simulator{}
}

func (s *Simulator) Install(callback Callback) (Pump, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pump != nil {
		return nil, ErrAlreadyInstalled
	}
	s.pump = &simulatedPump{
		sim:      s,
		callback: callback,
		requests: make(chan feedRequest),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	return s.pump, nil
}

// Installed reports whether a hook is currently registered.
func (s *Simulator) Installed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pump != nil
}

// Feed delivers one transition and returns whether the hook swallowed it.
// It blocks until the callback has run.
func (s *Simulator) Feed(t Transition) (bool, error) {
	s.mu.Lock()
	pump := s.pump
	s.mu.Unlock()

	if pump == nil {
		return false, ErrNotInstalled
	}

	req := feedRequest{transition: t, reply: make(chan bool, 1)}
	select {
	case pump.requests <- req:
	case <-pump.stopped:
		return false, ErrNotInstalled
	}
	return <-req.reply, nil
}

type simulatedPump struct {
	sim      *Simulator
	callback Callback
	requests chan feedRequest
	quit     chan struct{}
	quitOnce sync.Once
	stopped  chan struct{}
}

func (p *simulatedPump) Run() error {
	defer close(p.stopped)
	for {
		select {
		case req := <-p.requests:
			req.reply <- p.callback(req.transition)
		case <-p.quit:
			return nil
		}
	}
}

func (p *simulatedPump) Quit() error {
	p.quitOnce.Do(func() { close(p.quit) })
	return nil
}

func (p *simulatedPump) Uninstall() error {
	p.sim.mu.Lock()
	defer p.sim.mu.Unlock()

	if p.sim.pump != p {
		return ErrNotInstalled
	}
	p.sim.pump = nil
	return nil
}
