package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/yumosx/loft/internal/tui"
	"github.com/yumosx/loft/internal/tui/styles"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configured hotkeys",
	Long:  "List every command with its hotkeys after merging the global and project configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupConfig(cmd)
		if err != nil {
			return err
		}
		styled := term.IsTerminal(os.Stdout.Fd())
		return writeBindings(cmd.OutOrStdout(), cfg.Bindings(), styled)
	},
}

// writeBindings prints one command per line with its combos written the way
// they are typed.
func writeBindings(w io.Writer, bindings map[string][]string, styled bool) error {
	commands := slices.Sorted(maps.Keys(bindings))
	width := 0
	for _, command := range commands {
		width = max(width, lipgloss.Width(command))
	}

	t := styles.CurrentTheme()
	for _, command := range commands {
		combos := make([]string, len(bindings[command]))
		for i, combo := range bindings[command] {
			combos[i] = tui.DisplayCombo(combo)
		}
		name := command + strings.Repeat(" ", width-lipgloss.Width(command))
		keys := strings.Join(combos, ", ")
		if styled {
			name = t.S().Title.Render(name)
			keys = t.S().Muted.Render(keys)
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", name, keys); err != nil {
			return err
		}
	}
	return nil
}
