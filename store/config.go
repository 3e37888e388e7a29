package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes how to open the backing SQLite database.
//
// A config file is YAML, mirroring the connection-info file used by the
// contact listener deployment:
//
//	path: /var/lib/qsolog/qsolog.db
//	busy_timeout_ms: 5000
//	synchronous: NORMAL
type Config struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path"`

	// BusyTimeoutMS is how long a connection waits on a locked
	// database before failing, in milliseconds.
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`

	// Synchronous is the SQLite synchronous mode: OFF, NORMAL or FULL.
	Synchronous string `yaml:"synchronous"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Path:          "qsolog.db",
		BusyTimeoutMS: 5000,
		Synchronous:   "NORMAL",
	}
}

// LoadConfig reads a YAML config file, applying defaults for any field
// left unset.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.BusyTimeoutMS < 0 {
		return fmt.Errorf("busy_timeout_ms must not be negative")
	}
	switch c.Synchronous {
	case "OFF", "NORMAL", "FULL":
		return nil
	default:
		return fmt.Errorf("synchronous must be OFF, NORMAL or FULL, got %q", c.Synchronous)
	}
}
