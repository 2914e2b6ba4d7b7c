//go:build !windows

package system

type unsupportedIntrospector struct{}

// NewIntrospector returns the introspector for this platform.
func NewIntrospector() Introspector {
	return unsupportedIntrospector{}
}

func (unsupportedIntrospector) ForegroundExecutable() (string, error) { return "", ErrUnsupported }
func (unsupportedIntrospector) ForegroundWindowName() (string, error) { return "", ErrUnsupported }
