package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/sjson"
)

// SetHotkeys writes the combos of command into the JSON file at path,
// creating the file when needed and leaving every other key untouched.
func SetHotkeys(path, command string, combos []string) error {
	return setField(path, "command_to_hotkeys."+escapePath(command), combos)
}

// UnsetHotkeys removes the binding of command from the file at path.
func UnsetHotkeys(path, command string) error {
	data, err := readOrEmpty(path)
	if err != nil {
		return err
	}
	data, err = sjson.DeleteBytes(data, "command_to_hotkeys."+escapePath(command))
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", command, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func setField(path, key string, value any) error {
	data, err := readOrEmpty(path)
	if err != nil {
		return err
	}
	data, err = sjson.SetBytesOptions(data, key, value, &sjson.Options{Optimistic: true})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func readOrEmpty(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapePath(s string) string {
	return pathEscaper.Replace(s)
}
