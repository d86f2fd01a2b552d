package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yumosx/loft/internal/config"
	"github.com/yumosx/loft/internal/keys"
)

func init() {
	bindCmd.Flags().Bool("unset", false, "Remove the command's hotkeys instead of setting them")
	bindCmd.Flags().BoolP("global", "g", false, "Write the global configuration instead of the project one")
}

var bindCmd = &cobra.Command{
	Use:   "bind <command> [combo...]",
	Short: "Bind hotkeys to a command",
	Long:  "Write the hotkeys of a command to the project configuration, replacing the ones it had",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		unset, _ := cmd.Flags().GetBool("unset")
		global, _ := cmd.Flags().GetBool("global")

		path := config.LocalConfig(cwd)
		if global {
			path = config.GlobalConfig()
		}
		combos, err := bind(path, args[0], args[1:], unset)
		if err != nil {
			return err
		}
		if unset {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed the hotkeys of %s from %s\n", args[0], path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bound %s to %s in %s\n", args[0], strings.Join(combos, ", "), path)
		return nil
	},
}

// bind writes the normalized combos of command to the configuration file at
// path, or removes them when unset is true.
func bind(path, command string, raw []string, unset bool) ([]string, error) {
	if unset {
		return nil, config.UnsetHotkeys(path, command)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no hotkeys given for %s", command)
	}
	var combos []string
	for _, r := range raw {
		parsed := keys.ParseCombos(r)
		if len(parsed) == 0 {
			return nil, fmt.Errorf("invalid hotkey %q", r)
		}
		combos = append(combos, parsed...)
	}
	if err := config.SetHotkeys(path, command, combos); err != nil {
		return nil, fmt.Errorf("failed to write hotkeys: %w", err)
	}
	return combos, nil
}
