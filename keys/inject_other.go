//go:build !windows

package keys

// NewSystemInjector returns the platform injector.
func NewSystemInjector() (Injector, error) {
	return nil, ErrInjectionUnsupported
}
