// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Decode DecodeConfig `toml:"decode"`
	Serve  ServeConfig  `toml:"serve"`
}

// DecodeConfig maps decoding settings shared by the CLI and the server.
type DecodeConfig struct {
	Lang       *string `toml:"lang"`
	Segmenter  *string `toml:"segmenter"`
	Policy     *string `toml:"policy"`
	MinWordLen *int    `toml:"min-word-len"`
	Digits     *bool   `toml:"digits"`
	Workers    *int    `toml:"workers"`
	Timeout    *string `toml:"timeout"`
	History    *bool   `toml:"history"`
}

// ServeConfig maps HTTP server settings.
type ServeConfig struct {
	Addr *string `toml:"addr"`
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
