package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yumosx/loft/internal/dialog"
	"github.com/yumosx/loft/internal/env"
	"github.com/yumosx/loft/internal/log"
)

// LoadReader config via io.Reader.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	defaults := dialog.DefaultOptions()
	config := Config{Dialog: &defaults}
	if len(data) == 0 {
		return &config, nil
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, err
}

// Load loads the configuration from the default paths.
func Load(workingDir string, debug bool) (*Config, error) {
	configPaths := ConfigPaths(workingDir)
	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}
	cfg.paths = configPaths
	cfg.setDefaults(workingDir)

	if debug {
		cfg.Options.Debug = true
	}

	// Setup logs
	dataDir := dataDirectory(workingDir, cfg.Options.DataDirectory, env.New())
	log.Setup(
		filepath.Join(dataDir, "logs", fmt.Sprintf("%s.log", appName)),
		cfg.Options.Debug,
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Init loads the configuration and makes it available through Get.
func Init(workingDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, debug)
	if err != nil {
		return nil, err
	}
	set(cfg)
	return cfg, nil
}

// Reload reads the same files again for the working directory of cfg.
func Reload(cfg *Config) (*Config, error) {
	next, err := loadFromConfigPaths(cfg.paths)
	if err != nil {
		return nil, err
	}
	next.paths = cfg.paths
	next.setDefaults(cfg.workingDir)
	if cfg.Options != nil && cfg.Options.Debug {
		next.Options.Debug = true
	}
	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	set(next)
	return next, nil
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return LoadReader(eofReader{})
	}

	merged, err := Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(merged)
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
