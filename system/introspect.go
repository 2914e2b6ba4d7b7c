package system

import "errors"

// ErrUnsupported is returned by operations the current platform lacks.
var ErrUnsupported = errors.New("not supported on this platform")

// Introspector reports on the window the user is working in.
type Introspector interface {
	// ForegroundExecutable returns the base name of the foreground
	// process's executable, e.g. "notepad.exe".
	ForegroundExecutable() (string, error)
	ForegroundWindowName() (string, error)
}

// Static is an Introspector with fixed answers, used by the simulator.
type Static struct {
	Executable string
	WindowName string
}

func (s *Static) ForegroundExecutable() (string, error) { return s.Executable, nil }
func (s *Static) ForegroundWindowName() (string, error) { return s.WindowName, nil }
