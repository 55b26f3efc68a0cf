package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the optional per-project linter configuration.
type Config struct {
	// DebounceMs is the quiet interval the watcher waits after the last
	// file-change signal before starting a validation pass.
	DebounceMs int `toml:"debounce_ms"`
	// ExtraBuiltinActions widens the builtin action allowlist, for projects
	// with actions provided by plugins rather than the domain.
	ExtraBuiltinActions []string `toml:"extra_builtin_actions"`
	// IgnoreDirs are directory names skipped during discovery, in addition
	// to the defaults.
	IgnoreDirs []string `toml:"ignore_dirs"`
}

const ConfigFileName = ".rasalint.toml"

const DefaultConfigToml = `# rasalint configuration

# Quiet interval (milliseconds) before a file change triggers revalidation.
debounce_ms = 500

# Action names valid without a domain declaration, e.g. provided by plugins.
extra_builtin_actions = []

# Directory names excluded from discovery (on top of models, tests, .rasa).
ignore_dirs = []
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{DebounceMs: 500}
}

// LoadFromRoot reads the project config, falling back to defaults when the
// file does not exist.
func LoadFromRoot(root string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Default(), err
	}
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = 500
	}
	return cfg, nil
}

// WriteDefault creates the default config file if absent.
func WriteDefault(root string) error {
	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(DefaultConfigToml), 0644)
}

// Debounce returns the configured quiet interval as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
