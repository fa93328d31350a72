// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "morsel"

// WordTableExt is the file suffix of frequency tables.
const WordTableExt = ".tsv"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordTablePath builds the default frequency table path for a language.
func DefaultWordTablePath(lang string) string {
	return filepath.Join(DefaultWordTableDir(), lang+WordTableExt)
}

// TableLang returns the language of a frequency table file name. It reports
// false for anything DefaultWordTablePath would not have produced.
func TableLang(name string) (string, bool) {
	lang, ok := strings.CutSuffix(filepath.Base(name), WordTableExt)
	if !ok || lang == "" {
		return "", false
	}
	return lang, true
}

// DefaultWordTableDir returns the default directory for frequency tables.
func DefaultWordTableDir() string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), appName, "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
