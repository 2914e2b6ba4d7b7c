package app

import (
	"context"
	"errors"
	"fmt"

	"quasimode/cmd"
	"quasimode/cmd/help"
	"quasimode/config"
	"quasimode/eventloop"
	"quasimode/hook"
	"quasimode/keys"
	"quasimode/log"
	"quasimode/plugins"
	"quasimode/plugins/hotkeys"
	"quasimode/system"
)

// RunOptions are the collaborators of a running launcher.
type RunOptions struct {
	Config       *config.Config
	ConfigDir    string
	Platform     hook.Platform
	Injector     keys.Injector
	Introspector system.Introspector
	Renderer     Renderer

	// About is the text of the "about quasimode" command.
	About string

	OpenInFileBrowser func(path string) error
	CopyToClipboard   func(text string) error

	// Ready, when set, is called once the hook is installed.
	Ready func()
}

// Setup builds the user interface with the builtin, unicode and hotkey
// plugins initialized, and the help generator over its commands.
func Setup(opts RunOptions) (*UserInterface, *help.Generator, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	modeKey, err := cfg.ModeVirtualKey()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid mode key: %w", err)
	}

	registry := cmd.NewRegistry()
	u := NewUserInterface(Options{
		Registry:          registry,
		Renderer:          opts.Renderer,
		Injector:          opts.Injector,
		Introspector:      opts.Introspector,
		MaxSuggestions:    cfg.MaxSuggestions,
		OpenInFileBrowser: opts.OpenInFileBrowser,
		CopyToClipboard:   opts.CopyToClipboard,
	})
	generator := help.NewGenerator(registry, modeKey.String())

	u.AddPlugin(&plugins.Builtin{Help: generator, ConfigDir: opts.ConfigDir, About: opts.About})
	u.AddPlugin(&plugins.Unicode{})
	if hotkeysPath, err := cfg.HotkeysPath(); err != nil {
		log.WarningLog.Printf("hotkeys disabled: %v", err)
	} else {
		u.AddPlugin(hotkeys.NewLoader(hotkeysPath))
	}
	log.InfoLog.Printf("%d commands registered", registry.Len())
	return u, generator, nil
}

// Run is the main entrypoint into the launcher. It installs the keyboard hook,
// runs the consumer loop until a command quits, ctx is done or the hook stops,
// and always uninstalls the hook before returning.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	cfg := opts.Config
	u, _, err := Setup(opts)
	if err != nil {
		return err
	}
	modeKey, _ := cfg.ModeVirtualKey()

	if cfg.DisableCapsLock && modeKey == keys.VKCapital {
		if disabler, ok := opts.Injector.(keys.CapsLockDisabler); ok {
			if err := disabler.DisableCapsLock(); err != nil {
				log.WarningLog.Printf("failed to disable caps lock: %v", err)
			}
		}
	}

	queue := hook.NewQueue()
	loop := eventloop.New()
	handle, err := hook.Install(opts.Platform, modeKey, queue, loop)
	if err != nil {
		return err
	}
	defer handle.Uninstall()
	// The interceptor passes keys through once nobody consumes them.
	defer queue.Close()

	if opts.Ready != nil {
		opts.Ready()
	}
	if cfg.WelcomeMessage != "" {
		u.ShowMessage(cfg.WelcomeMessage)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-handle.Done():
			log.ErrorLog.Printf("keyboard hook stopped unexpectedly")
			cancel()
		case <-ctx.Done():
		}
	}()

	err = loop.Run(ctx, u.Drain(queue))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
