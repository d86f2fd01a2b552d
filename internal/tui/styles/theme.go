package styles

import (
	"fmt"
	"image/color"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgSelected color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles *Styles
}

type Styles struct {
	Base         lipgloss.Style
	SelectedBase lipgloss.Style

	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Dialog chrome
	Dialog        lipgloss.Style
	DialogFocused lipgloss.Style
	Header        lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Tool          lipgloss.Style
	Resizer       lipgloss.Style
	Overlay       lipgloss.Style

	Markdown ansi.StyleConfig

	TextInput textinput.Styles
	Help      help.Styles
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)
	dialog := base.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.BgSubtle)
	return &Styles{
		Base: base,

		SelectedBase: base.Background(t.Primary),

		Title: base.
			Foreground(t.Accent).
			Bold(true),

		Text:   base,
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),

		Success: base.Foreground(t.Success),
		Error:   base.Foreground(t.Error),
		Warning: base.Foreground(t.Warning),
		Info:    base.Foreground(t.Info),

		Dialog:        dialog,
		DialogFocused: dialog.BorderForeground(t.BorderFocus),
		Header:        base.Background(t.BgSubtle).Bold(true),
		Button:        base.Background(t.BgOverlay).Padding(0, 1),
		ButtonFocused: base.Background(t.Primary).Foreground(t.FgSelected).Padding(0, 1),
		Tool:          base.Foreground(t.FgMuted).Background(t.BgSubtle),
		Resizer:       base.Foreground(t.FgSubtle),
		Overlay:       lipgloss.NewStyle().Background(Darken(t.BgBase, 40)),

		Markdown: t.markdownStyle(),

		TextInput: textinput.Styles{
			Focused: textinput.StyleState{
				Text:        base,
				Placeholder: base.Foreground(t.FgMuted),
				Prompt:      base.Foreground(t.Tertiary),
				Suggestion:  base.Foreground(t.FgMuted),
			},
			Blurred: textinput.StyleState{
				Text:        base.Foreground(t.FgMuted),
				Placeholder: base.Foreground(t.FgMuted),
				Prompt:      base.Foreground(t.FgMuted),
				Suggestion:  base.Foreground(t.FgMuted),
			},
			Cursor: textinput.CursorStyle{
				Color: t.Secondary,
				Shape: tea.CursorBar,
				Blink: true,
			},
		},

		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.Border),
			Ellipsis:       base.Foreground(t.Border),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.Border),
		},
	}
}

type Manager struct {
	mu      sync.RWMutex
	themes  map[string]*Theme
	current *Theme
}

var (
	defaultManager *Manager
	defaultOnce    sync.Once
)

func DefaultManager() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager("charm")
	})
	return defaultManager
}

func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

func NewManager(defaultTheme string) *Manager {
	m := &Manager{
		themes: make(map[string]*Theme),
	}

	m.Register(NewCharmTheme())
	m.Register(NewMonoTheme())

	m.current = m.themes[defaultTheme]
	if m.current == nil {
		m.current = m.themes["charm"]
	}
	return m
}

func (m *Manager) Register(theme *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if theme, ok := m.themes[name]; ok {
		m.current = theme
		return nil
	}
	return fmt.Errorf("theme %s not found", name)
}

func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Darken blends c towards black by percent (0-100) in Lab space.
func Darken(c color.Color, percent float64) color.Color {
	cc, _ := colorful.MakeColor(c)
	return cc.BlendLab(colorful.Color{}, percent/100).Clamped()
}

// Lighten blends c towards white by percent (0-100) in Lab space.
func Lighten(c color.Color, percent float64) color.Color {
	cc, _ := colorful.MakeColor(c)
	return cc.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, percent/100).Clamped()
}

// ApplyForegroundGrad renders a given string with a horizontal gradient
// foreground.
func ApplyForegroundGrad(base lipgloss.Style, input string, color1, color2 color.Color) string {
	if input == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 1 {
		return base.Foreground(color1).Render(input)
	}

	var o strings.Builder
	ramp := blendColors(len(clusters), color1, color2)
	for i, c := range ramp {
		o.WriteString(base.Foreground(c).Render(clusters[i]))
	}
	return o.String()
}

// blendColors returns size colors blended between the given stops in Hcl,
// which stays in gamut.
func blendColors(size int, stops ...color.Color) []color.Color {
	if len(stops) < 2 || size <= 0 {
		return nil
	}

	stopsPrime := make([]colorful.Color, len(stops))
	for i, k := range stops {
		stopsPrime[i], _ = colorful.MakeColor(k)
	}

	numSegments := len(stopsPrime) - 1
	blended := make([]color.Color, 0, size)

	segmentSizes := make([]int, numSegments)
	baseSize := size / numSegments
	remainder := size % numSegments
	for i := range numSegments {
		segmentSizes[i] = baseSize
		if i < remainder {
			segmentSizes[i]++
		}
	}

	for i := range numSegments {
		c1 := stopsPrime[i]
		c2 := stopsPrime[i+1]
		segmentSize := segmentSizes[i]

		for j := range segmentSize {
			var t float64
			if segmentSize > 1 {
				t = float64(j) / float64(segmentSize-1)
			}
			blended = append(blended, c1.BlendHcl(c2, t).Clamped())
		}
	}

	return blended
}

func colorToString(c color.Color) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
