package styles

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// NewMonoTheme is a grayscale theme for terminals with few colors.
func NewMonoTheme() *Theme {
	return &Theme{
		Name:   "mono",
		IsDark: true,

		Primary:   lipgloss.Color("#d0d0d0"),
		Secondary: lipgloss.Color("#b0b0b0"),
		Tertiary:  lipgloss.Color("#909090"),
		Accent:    lipgloss.Color("#ffffff"),

		BgBase:    lipgloss.Color("#000000"),
		BgSubtle:  lipgloss.Color("#1c1c1c"),
		BgOverlay: lipgloss.Color("#3a3a3a"),

		FgBase:     lipgloss.Color("#d0d0d0"),
		FgMuted:    lipgloss.Color("#8a8a8a"),
		FgSubtle:   lipgloss.Color("#6c6c6c"),
		FgSelected: lipgloss.Color("#000000"),

		Border:      lipgloss.Color("#585858"),
		BorderFocus: lipgloss.Color("#ffffff"),

		Success: lipgloss.Color("#d0d0d0"),
		Error:   lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#e4e4e4"),
		Info:    lipgloss.Color("#bcbcbc"),
	}
}
