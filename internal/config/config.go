package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/hotkeys"
	"github.com/yumosx/loft/internal/keys"
)

const (
	appName              = "loft"
	defaultDataDirectory = ".loft"
)

// Hotkeys is one or more combos bound to a command. In JSON it is either a
// single string, which may itself list combos separated by ", ", or an
// array of strings.
type Hotkeys []string

func (h *Hotkeys) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*h = Hotkeys{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("hotkeys must be a string or a list of strings: %w", err)
	}
	*h = Hotkeys(list)
	return nil
}

// Combos returns the normalized combos.
func (h Hotkeys) Combos() []string {
	var out []string
	for _, raw := range h {
		for _, combo := range keys.ParseCombos(raw) {
			if !slices.Contains(out, combo) {
				out = append(out, combo)
			}
		}
	}
	return out
}

type TUIOptions struct {
	Theme string `json:"theme,omitempty" jsonschema:"description=Color theme of the playground,enum=charm,enum=mono,default=charm"`
	// Mouse reporting can be turned off to keep terminal text selection.
	DisableMouse bool `json:"disable_mouse,omitempty" jsonschema:"description=Disable mouse support in the playground"`
}

type Options struct {
	TUI       TUIOptions `json:"tui" jsonschema:"description=Playground options"`
	Debug     bool       `json:"debug,omitempty" jsonschema:"description=Enable debug logging"`
	TextIcons bool       `json:"text_icons,omitempty" jsonschema:"description=Show labels instead of icon glyphs in toolbars"`
	Language  string     `json:"language,omitempty" jsonschema:"description=Language of dialog labels,example=de,example=fr-CA"`
	// Relative to the cwd
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs and state,default=.loft"`
}

type Config struct {
	Schema string `json:"$schema,omitempty"`

	// Miscellaneous options
	Options *Options `json:"options,omitempty" jsonschema:"description=General options"`

	// Dialog defaults for every dialog an editor opens
	Dialog *dialog.Options `json:"dialog,omitempty" jsonschema:"description=Dialog defaults"`

	// Command name to hotkeys
	CommandToHotkeys map[string]Hotkeys `json:"command_to_hotkeys,omitempty" jsonschema:"description=Hotkeys per command"`

	workingDir string
	paths      []string
}

// DefaultCommandToHotkeys returns the editor bindings plus the playground
// bindings.
func DefaultCommandToHotkeys() map[string]Hotkeys {
	out := make(map[string]Hotkeys)
	for command, combos := range hotkeys.DefaultCommandToHotkeys() {
		out[command] = Hotkeys(combos)
	}
	maps.Copy(out, map[string]Hotkeys{
		"newDialog": {"ctrl+n"},
		"about":     {"f1"},
		"rename":    {"ctrl+r"},
		"palette":   {"ctrl+p"},
		"quit":      {"ctrl+q", "ctrl+c"},
		"copy":      {"ctrl+y"},
	})
	return out
}

// WorkingDir returns the directory the configuration was loaded for.
func (c *Config) WorkingDir() string {
	return c.workingDir
}

// Paths returns the configuration files that were considered, in merge
// order.
func (c *Config) Paths() []string {
	return c.paths
}

// Bindings returns the command to combos table in the form the hotkey
// dispatcher takes.
func (c *Config) Bindings() map[string][]string {
	out := make(map[string][]string, len(c.CommandToHotkeys))
	for command, h := range c.CommandToHotkeys {
		if combos := h.Combos(); len(combos) > 0 {
			out[command] = combos
		}
	}
	return out
}

// Commands returns the configured command names, sorted.
func (c *Config) Commands() []string {
	return slices.Sorted(maps.Keys(c.CommandToHotkeys))
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = defaultDataDirectory
	}
	if c.Options.TUI.Theme == "" {
		c.Options.TUI.Theme = "charm"
	}

	defaults := dialog.DefaultOptions()
	if c.Dialog == nil {
		c.Dialog = &defaults
	}
	if c.Dialog.ZIndex == 0 {
		c.Dialog.ZIndex = defaults.ZIndex
	}
	if c.Dialog.Width == 0 {
		c.Dialog.Width = defaults.Width
	}
	if c.Dialog.Height == 0 {
		c.Dialog.Height = defaults.Height
	}
	if c.Dialog.Buttons == nil {
		c.Dialog.Buttons = defaults.Buttons
	}

	merged := DefaultCommandToHotkeys()
	maps.Copy(merged, c.CommandToHotkeys)
	c.CommandToHotkeys = merged
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Add appends a new validation error
func (e *ValidationErrors) Add(field, message string) {
	*e = append(*e, ValidationError{Field: field, Message: message})
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Dialog != nil {
		if c.Dialog.Width < 0 {
			errors.Add("dialog.width", "must not be negative")
		}
		if c.Dialog.Height < 0 {
			errors.Add("dialog.height", "must not be negative")
		}
		if c.Dialog.ZIndex < 0 {
			errors.Add("dialog.z_index", "must not be negative")
		}
	}

	if c.Options != nil && !slices.Contains([]string{"", "charm", "mono"}, c.Options.TUI.Theme) {
		errors.Add("options.tui.theme", fmt.Sprintf("unknown theme %q", c.Options.TUI.Theme))
	}

	owners := make(map[string]string)
	for _, command := range c.Commands() {
		field := "command_to_hotkeys." + command
		h := c.CommandToHotkeys[command]
		if len(h) > 0 && len(h.Combos()) == 0 {
			errors.Add(field, "no usable combo")
		}
		for _, combo := range h.Combos() {
			if other, taken := owners[combo]; taken {
				errors.Add(field, fmt.Sprintf("combo %q is already bound to %s", combo, other))
				continue
			}
			owners[combo] = command
		}
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Get returns the configuration loaded by Init.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

func set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
