package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const LockFileName = "instance.lock"

// ErrAlreadyRunning is returned when another launcher holds the instance lock.
var ErrAlreadyRunning = errors.New("another quasimode instance is already running")

// InstanceLock is held for the lifetime of a running launcher.
type InstanceLock struct {
	lockFile *flock.Flock
}

// AcquireInstanceLock takes the single-instance lock in the config directory
// without blocking.
func AcquireInstanceLock() (*InstanceLock, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return acquireInstanceLockAt(filepath.Join(configDir, LockFileName))
}

func acquireInstanceLockAt(path string) (*InstanceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	fileLock := flock.New(path)
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}
	return &InstanceLock{lockFile: fileLock}, nil
}

// Path returns the lock file path.
func (l *InstanceLock) Path() string {
	return l.lockFile.Path()
}

// Release gives up the lock. It is safe to call more than once.
func (l *InstanceLock) Release() error {
	if l == nil || l.lockFile == nil {
		return nil
	}
	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to release instance lock: %w", err)
	}
	return nil
}
