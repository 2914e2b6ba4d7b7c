package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"quasimode/app"
	"quasimode/config"
	"quasimode/hook"
	"quasimode/keys"
	"quasimode/log"
	"quasimode/plugins/hotkeys"
	"quasimode/system"
	"quasimode/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.1.0"

	watchFlag bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quasimode",
	Short: "Quasimode - a keyboard launcher",
	Long: `Quasimode is a keyboard launcher. Hold down the mode key (caps lock by
default), type part of a command's name and release the mode key to run it.

Commands come from the built-in set, the unicode character table and the
hotkey file (~/.quasimode/hotkeys.txt by default).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher(cmd.Context())
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Install the keyboard hook and run the launcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher(cmd.Context())
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Try the launcher in the terminal without a keyboard hook",
	Long: `Runs the launcher against a simulated keyboard. Tab presses and releases
the mode key; other keys are typed while it is held. Synthetic input is listed
instead of being sent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log.Initialize(cfg.LogConfig())
		defer log.Close()

		configDir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		return app.Simulate(cmd.Context(), app.SimulateOptions{
			Config:    cfg,
			ConfigDir: configDir,
			About:     about(cfg),
			Output:    os.Stdout,
			Color:     isTerminal(os.Stdout),
		})
	},
}

var hotkeysCmd = &cobra.Command{
	Use:   "hotkeys",
	Short: "Work with the hotkey file",
}

var hotkeysCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse the hotkey file and report its bindings and problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := hotkeysPath(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		err = checkHotkeys(out, path)
		if !watchFlag {
			return err
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fmt.Fprintf(out, "watching %s, press ctrl+c to stop\n", path)
		err = hotkeys.Watch(ctx, path, hotkeys.DefaultWatchOptions(), func() {
			fmt.Fprintln(out, strings.Repeat("-", 40))
			if err := checkHotkeys(out, path); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Diagnostics",
}

var debugForegroundCmd = &cobra.Command{
	Use:   "foreground",
	Short: "Print the foreground executable and window name",
	RunE: func(cmd *cobra.Command, args []string) error {
		introspector := system.NewIntrospector()
		exe, err := introspector.ForegroundExecutable()
		if err != nil {
			return fmt.Errorf("failed to get foreground executable: %w", err)
		}
		title, err := introspector.ForegroundWindowName()
		if err != nil {
			return fmt.Errorf("failed to get foreground window name: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Executable: %s\nWindow: %s\n", exe, title)
		return nil
	},
}

var debugConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the config directory and log file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		configDir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		logPath, err := log.GetLogFilePath(cfg.LogConfig())
		if err != nil {
			return err
		}
		hotkeysFile, err := cfg.HotkeysPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config: %s\n", configDir)
		fmt.Fprintf(out, "Hotkeys: %s\n", hotkeysFile)
		fmt.Fprintf(out, "Log: %s\n", logPath)
		fmt.Fprintf(out, "Mode key: %s\n", cfg.ModeKey)
		return nil
	},
}

var debugCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every command the launcher would register",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		configDir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		color := isTerminal(os.Stdout)
		_, generator, err := app.Setup(app.RunOptions{
			Config:       cfg,
			ConfigDir:    configDir,
			About:        about(cfg),
			Introspector: system.NewIntrospector(),
			Renderer:     ui.NewConsole(out, ui.NewTheme(out, color)),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, generator.GenerateCommandList())
		fmt.Fprintln(out, generator.GenerateStatusLine(keys.HelpCategoryQuasimode))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quasimode",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quasimode version %s\n", version)
	},
}

func init() {
	hotkeysCheckCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-check whenever the file changes")

	hotkeysCmd.AddCommand(hotkeysCheckCmd)
	debugCmd.AddCommand(debugForegroundCmd, debugConfigCmd, debugCommandsCmd)
	rootCmd.AddCommand(runCmd, simulateCmd, hotkeysCmd, debugCmd, versionCmd)
}

func runLauncher(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	log.Initialize(cfg.LogConfig())
	defer log.Close()

	lock, err := config.AcquireInstanceLock()
	if errors.Is(err, config.ErrAlreadyRunning) {
		return fmt.Errorf("%w; quit it first", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.ErrorLog.Printf("%v", err)
		}
	}()

	platform, err := hook.NewSystemPlatform()
	if err != nil {
		return err
	}
	injector, err := keys.NewSystemInjector()
	if err != nil {
		return err
	}
	configDir, err := config.GetConfigDir()
	if err != nil {
		return err
	}

	renderer := ui.NewConsole(os.Stdout, ui.NewTheme(os.Stdout, isTerminal(os.Stdout)))
	return app.Run(ctx, app.RunOptions{
		Config:       cfg,
		ConfigDir:    configDir,
		About:        about(cfg),
		Platform:     platform,
		Injector:     injector,
		Introspector: system.NewIntrospector(),
		Renderer:     renderer,
	})
}

func about(cfg *config.Config) string {
	return fmt.Sprintf("quasimode %s, a keyboard launcher.\nHold %s and type a command.", version, cfg.ModeKey)
}

func hotkeysPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return config.LoadConfig().HotkeysPath()
}

// checkHotkeys prints every section of the hotkey file at path with its
// bindings, followed by the parse warnings.
func checkHotkeys(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := hotkeys.Parse(f)
	if err != nil {
		return err
	}

	for _, section := range result.Sections {
		name := section.App
		if name == "" {
			name = "(all applications)"
		}
		if section.ExeFilter != "" {
			name += " [" + section.ExeFilter + "]"
		}
		fmt.Fprintln(out, name)
		for _, b := range section.Bindings {
			fmt.Fprintf(out, "  %s = %s\n", b.Name, b.Combination)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintf(out, "%d section(s), %d warning(s)\n", len(result.Sections), len(result.Warnings))
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
