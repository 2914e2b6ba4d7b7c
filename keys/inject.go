package keys

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInjectionUnsupported = errors.New("synthetic input is not supported on this platform")

// Injector sends synthetic input to the foreground application.
type Injector interface {
	Presser
	// TypeChar inserts text as-is, ignoring any held modifiers.
	TypeChar(text string) error
}

// CapsLockDisabler is implemented by injectors that can turn caps lock off.
type CapsLockDisabler interface {
	DisableCapsLock() error
}

// Stroke is one recorded synthetic transition or typed string.
type Stroke struct {
	Key       VirtualKey
	Direction Direction
	Text      string
}

func (s Stroke) String() string {
	if s.Text != "" {
		return fmt.Sprintf("type %q", s.Text)
	}
	return fmt.Sprintf("%s %s", s.Key, s.Direction)
}

// Recorder is an Injector that records everything it is asked to send. The
// simulator host and tests use it in place of the operating system.
type Recorder struct {
	mu      sync.Mutex
	strokes []Stroke
	// OnStroke, when set, is called after each stroke is recorded.
	OnStroke func(Stroke)
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) PressKey(key VirtualKey, direction Direction) error {
	r.record(Stroke{Key: key, Direction: direction})
	return nil
}

func (r *Recorder) TypeChar(text string) error {
	r.record(Stroke{Text: text})
	return nil
}

func (r *Recorder) record(s Stroke) {
	r.mu.Lock()
	r.strokes = append(r.strokes, s)
	onStroke := r.OnStroke
	r.mu.Unlock()

	if onStroke != nil {
		onStroke(s)
	}
}

// Strokes returns a copy of everything recorded so far.
func (r *Recorder) Strokes() []Stroke {
	r.mu.Lock()
	defer r.mu.Unlock()

	strokes := make([]Stroke, len(r.strokes))
	copy(strokes, r.strokes)
	return strokes
}

// Reset forgets recorded strokes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes = nil
}
