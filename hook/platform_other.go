//go:build !windows

package hook

import (
	"errors"
)

// NewSystemPlatform returns the operating system's keyboard hook.
func NewSystemPlatform() (Platform, error) {
	return nil, errors.New("a system-wide keyboard hook is only available on windows, use the simulator")
}
