//go:build windows

package hook

import (
	"fmt"
	"sync"
	"unsafe"

	"quasimode/keys"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	wmQuit       = 0x0012
	wmUser       = 0x0400
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
	pmNoRemove   = 0x0000
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPeekMessageW        = user32.NewProc("PeekMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

type kbdllHookStruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type point struct {
	x, y int32
}

type msg struct {
	hwnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

// The low-level hook procedure carries no user data, so the active callback
// lives here. It is written and read only on the thread that owns the hook.
var (
	installMu      sync.Mutex
	hookInstalled  bool
	activeCallback Callback
	hookProc       = windows.NewCallback(lowLevelKeyboardProc)
)

func lowLevelKeyboardProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 && activeCallback != nil {
		info := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		var t Transition
		handled := true
		switch wParam {
		case wmKeyDown, wmSysKeyDown:
			t = Transition{Key: keys.VirtualKey(info.vkCode), Down: true}
		case wmKeyUp, wmSysKeyUp:
			t = Transition{Key: keys.VirtualKey(info.vkCode), Down: false}
		default:
			handled = false
		}
		if handled && activeCallback(t) {
			return 1
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return r
}

type windowsPlatform struct{}

// NewSystemPlatform returns the operating system's keyboard hook.
func NewSystemPlatform() (Platform, error) {
	if err := procSetWindowsHookExW.Find(); err != nil {
		return nil, fmt.Errorf("failed to load SetWindowsHookExW: %w", err)
	}
	return windowsPlatform{}, nil
}

func (windowsPlatform) Install(callback Callback) (Pump, error) {
	installMu.Lock()
	defer installMu.Unlock()
	if hookInstalled {
		return nil, ErrAlreadyInstalled
	}

	// Make sure this thread has a message queue before anyone posts to it.
	var m msg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, wmUser, wmUser, pmNoRemove)

	activeCallback = callback
	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, hookProc, 0, 0)
	if hook == 0 {
		activeCallback = nil
		return nil, fmt.Errorf("SetWindowsHookExW: %w", err)
	}
	hookInstalled = true

	return &windowsPump{hook: hook, threadID: windows.GetCurrentThreadId()}, nil
}

type windowsPump struct {
	hook     uintptr
	threadID uint32
}

func (p *windowsPump) Run() error {
	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		}
	}
}

func (p *windowsPump) Quit() error {
	r, _, err := procPostThreadMessageW.Call(uintptr(p.threadID), wmQuit, 0, 0)
	if r == 0 {
		return fmt.Errorf("PostThreadMessageW: %w", err)
	}
	return nil
}

func (p *windowsPump) Uninstall() error {
	installMu.Lock()
	defer installMu.Unlock()
	if !hookInstalled {
		return ErrNotInstalled
	}

	r, _, err := procUnhookWindowsHookEx.Call(p.hook)
	activeCallback = nil
	hookInstalled = false
	if r == 0 {
		return fmt.Errorf("UnhookWindowsHookEx: %w", err)
	}
	return nil
}
