// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice  PracticeConfig  `toml:"practice"`
	Bootstrap BootstrapConfig `toml:"bootstrap"`
	Log       LogConfig       `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Vocabulary    *string  `toml:"vocabulary"`
	MinWordLength *int     `toml:"min-word-length"`
	MinWords      *int     `toml:"min-words"`
	MaxWords      *int     `toml:"max-words"`
	CapsPct       *float64 `toml:"caps"`
	PunctPct      *float64 `toml:"punct"`
	PunctSet      *string  `toml:"punct-set"`
	Resume        *bool    `toml:"resume"`
}

// BootstrapConfig maps resampling settings.
type BootstrapConfig struct {
	Samples *int      `toml:"samples"`
	Workers *int      `toml:"workers"`
	Timeout *Duration `toml:"timeout"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// Duration decodes strings such as "5s" or "1m30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
