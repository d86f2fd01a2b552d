package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/yumosx/loft/internal/config"
	"github.com/yumosx/loft/internal/log"
	"github.com/yumosx/loft/internal/tui"
	"github.com/yumosx/loft/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Bool("no-watch", false, "Do not reload the configuration when it changes")

	rootCmd.AddCommand(keysCmd, bindCmd, schemaCmd)
}

var rootCmd = &cobra.Command{
	Use:   "loft",
	Short: "Floating dialogs and hotkeys in the terminal",
	Long: heredoc.Doc(`
		Loft is a playground for a dialog manager: stacked, draggable and
		resizable dialogs with alert, prompt and confirm presets, driven by
		configurable hotkeys.
	`),
	Example: heredoc.Doc(`
		# Open the playground
		loft

		# Run with debug logging in a specific directory
		loft -d -c /path/to/project

		# List the active hotkeys
		loft keys

		# Bind a command in the project configuration
		loft bind newDialog ctrl+n f3
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		noWatch, _ := cmd.Flags().GetBool("no-watch")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		}
		if !cfg.Options.TUI.DisableMouse {
			opts = append(opts,
				tea.WithMouseCellMotion(),            // Use cell motion instead of all motion to reduce event flooding
				tea.WithFilter(tui.MouseEventFilter), // Drop motion events faster than a redraw
			)
		}
		program := tea.NewProgram(tui.New(cfg), opts...)

		if !noWatch {
			watcher := config.NewWatcher(cfg, func(next *config.Config) {
				program.Send(tui.ConfigChangedMsg{Config: next})
			})
			go func() {
				defer log.RecoverPanic("config-watcher", nil)
				if err := watcher.Run(ctx); err != nil {
					slog.Error("Config watcher stopped", "error", err)
				}
			}()
		}

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func setupConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	return config.Init(cwd, debug)
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
