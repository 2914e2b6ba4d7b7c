package system

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// OpenInFileBrowser opens path with the desktop's file browser. It does not
// wait for the browser to exit.
func OpenInFileBrowser(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	name, args, err := browserCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// reap the child once it exits
	go func() { _ = cmd.Wait() }()
	return nil
}

func browserCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "windows":
		return "explorer", []string{path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, ErrUnsupported
	}
}

// CopyToClipboard replaces the clipboard contents with text.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
