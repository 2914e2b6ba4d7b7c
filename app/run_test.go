package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"quasimode/config"
	"quasimode/hook"
	"quasimode/keys"
	"quasimode/system"
	"quasimode/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncRenderer is a fakeRenderer safe to inspect from the test goroutine.
type syncRenderer struct {
	mu sync.Mutex
	r  fakeRenderer
}

func (s *syncRenderer) DrawQuasimode(frame ui.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.DrawQuasimode(frame)
}

func (s *syncRenderer) HideQuasimode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.HideQuasimode()
}

func (s *syncRenderer) ShowMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.ShowMessage(text)
}

func (s *syncRenderer) HideMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.HideMessage()
}

func (s *syncRenderer) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.r.messages...)
}

type capsLockRecorder struct {
	*keys.Recorder
	disabled int
}

func (c *capsLockRecorder) DisableCapsLock() error {
	c.disabled++
	return nil
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.HotkeysFile = filepath.Join(t.TempDir(), "hotkeys.txt")
	cfg.WelcomeMessage = "welcome"
	return cfg
}

func startRun(t *testing.T, ctx context.Context, cfg *config.Config, platform hook.Platform, injector keys.Injector, renderer Renderer) <-chan error {
	t.Helper()
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, RunOptions{
			Config:       cfg,
			ConfigDir:    t.TempDir(),
			Platform:     platform,
			Injector:     injector,
			Introspector: &system.Static{Executable: "test.exe"},
			Renderer:     renderer,
			Ready:        func() { close(ready) },
		})
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("Run returned before the hook was installed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not installed")
	}
	return done
}

func feedText(t *testing.T, platform *hook.Simulator, text string) {
	t.Helper()
	for _, r := range text {
		vk, ok := keys.KeyForChar(r)
		require.True(t, ok)
		_, err := platform.Feed(hook.Transition{Key: vk, Down: true})
		require.NoError(t, err)
		_, err = platform.Feed(hook.Transition{Key: vk, Down: false})
		require.NoError(t, err)
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunQuitCommand(t *testing.T) {
	platform := hook.NewSimulator()
	renderer := &syncRenderer{}
	injector := &capsLockRecorder{Recorder: keys.NewRecorder()}

	done := startRun(t, context.Background(), testConfig(t), platform, injector, renderer)
	assert.True(t, platform.Installed())
	assert.Equal(t, 1, injector.disabled)

	swallowed, err := platform.Feed(hook.Transition{Key: keys.VKCapital, Down: true})
	require.NoError(t, err)
	assert.True(t, swallowed)

	feedText(t, platform, "quit")

	_, err = platform.Feed(hook.Transition{Key: keys.VKCapital, Down: false})
	require.NoError(t, err)

	require.NoError(t, waitDone(t, done))
	assert.False(t, platform.Installed())
	assert.Equal(t, []string{"welcome"}, renderer.messages())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	platform := hook.NewSimulator()
	ctx, cancel := context.WithCancel(context.Background())

	cfg := testConfig(t)
	cfg.ModeKey = "f12"
	injector := &capsLockRecorder{Recorder: keys.NewRecorder()}
	done := startRun(t, ctx, cfg, platform, injector, &syncRenderer{})
	// caps lock is left alone when it is not the mode key
	assert.Equal(t, 0, injector.disabled)

	// the hook passes keys through outside the quasimode
	swallowed, err := platform.Feed(hook.Transition{Key: keys.VKA, Down: true})
	require.NoError(t, err)
	assert.False(t, swallowed)

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.False(t, platform.Installed())
}

func TestRunInstallFailure(t *testing.T) {
	platform := hook.NewSimulator()
	_, err := platform.Install(func(hook.Transition) bool { return false })
	require.NoError(t, err)

	err = Run(context.Background(), RunOptions{
		Config:       testConfig(t),
		Platform:     platform,
		Injector:     keys.NewRecorder(),
		Introspector: &system.Static{},
		Renderer:     &syncRenderer{},
	})
	assert.ErrorIs(t, err, hook.ErrHookFailed)
}
