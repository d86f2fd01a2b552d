package styles

import (
	"github.com/charmbracelet/x/exp/charmtone"
)

func NewCharmTheme() *Theme {
	return &Theme{
		Name:   "charm",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,
		Accent:    charmtone.Zest,

		BgBase:    charmtone.Pepper,
		BgSubtle:  charmtone.Charcoal,
		BgOverlay: charmtone.Iron,

		FgBase:     charmtone.Ash,
		FgMuted:    charmtone.Squid,
		FgSubtle:   charmtone.Oyster,
		FgSelected: charmtone.Salt,

		Border:      charmtone.Iron,
		BorderFocus: charmtone.Charple,

		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,
	}
}
