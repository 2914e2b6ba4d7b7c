package eventloop

import (
	"context"

	"quasimode/log"
)

// Loop is the consumer's blocking wait. Wake interrupts it from any
// goroutine. Wakes that arrive while the consumer is busy collapse into a
// single pending wake, so the drain function must empty its source every time
// it runs.
type Loop struct {
	kick chan struct{}
	log  *log.Loggers
}

func New() *Loop {
	return &Loop{
		kick: make(chan struct{}, 1),
		log:  log.For("eventloop"),
	}
}

// Wake never blocks.
func (l *Loop) Wake() {
	select {
	case l.kick <- struct{}{}:
	default:
		// a wake is already pending
	}
}

// DrainFunc handles everything that is pending. It reports whether the loop
// should stop.
type DrainFunc func() (quit bool, err error)

// Run waits for wakes and calls drain after each, until drain asks to quit,
// drain fails, or ctx is done. A drain error is returned as is.
func (l *Loop) Run(ctx context.Context, drain DrainFunc) error {
	l.log.InfoLog.Printf("event loop started")
	defer l.log.InfoLog.Printf("event loop stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.kick:
		}

		quit, err := drain()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
