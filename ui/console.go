package ui

import (
	"fmt"
	"io"
	"sync"
)

// Console draws the quasimode to a line-oriented writer. It is used when
// the launcher runs without a native overlay.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	theme *Theme

	// last drawn frame; identical frames are not redrawn
	last    string
	visible bool
}

func NewConsole(out io.Writer, theme *Theme) *Console {
	return &Console{out: out, theme: theme}
}

func (c *Console) DrawQuasimode(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rendered := c.theme.RenderFrame(f)
	if c.visible && rendered == c.last {
		return
	}
	c.last = rendered
	c.visible = true
	fmt.Fprintln(c.out, rendered)
}

func (c *Console) HideQuasimode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
	c.last = ""
}

func (c *Console) ShowMessage(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, c.theme.RenderMessage(text))
}

// HideMessage is a no-op: printed messages scroll away on their own.
func (c *Console) HideMessage() {}
