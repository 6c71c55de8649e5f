// Package config provides shared configuration utilities: environment
// lookups, .env loading, logger setup and tuning files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/tomz197/galactic/internal/spawn"
)

// Environment variables read by the binaries.
const (
	EnvLogFile   = "GALACTIC_LOG"
	EnvLogLevel  = "GALACTIC_LOG_LEVEL"
	EnvLogFormat = "GALACTIC_LOG_FORMAT"
	EnvDataDir   = "GALACTIC_DATA_DIR"
	EnvTuning    = "GALACTIC_TUNING"
	EnvSound     = "GALACTIC_SOUND"
	EnvProfile   = "GALACTIC_PROFILE"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Unparsable values fall back too.
func GetEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// Port reads a TCP port number from key. An unset variable gives fallback;
// anything that is not a number in 1..65535 is an error.
func Port(key string, fallback int) (string, error) {
	raw, set := os.LookupEnv(key)
	port := GetEnvInt(key, 0)
	if !set {
		port = fallback
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("%s: invalid port %q", key, raw)
	}
	return strconv.Itoa(port), nil
}

// ScaleProfile returns the entity scale profile named by GALACTIC_PROFILE,
// "desktop" when unset.
func ScaleProfile() string {
	return strings.ToLower(strings.TrimSpace(GetEnv(EnvProfile, "desktop")))
}

// GetEnvBool is GetEnv for booleans ("1", "true", "no", ...).
func GetEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set win. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// NewLogger creates a structured logger writing to w, honoring
// GALACTIC_LOG_LEVEL (debug, info, warn, error) and GALACTIC_LOG_FORMAT
// (text, json, logfmt).
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	if lvl, err := log.ParseLevel(GetEnv(EnvLogLevel, "info")); err == nil {
		logger.SetLevel(lvl)
	}
	switch strings.ToLower(GetEnv(EnvLogFormat, "text")) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	}
	return logger
}

// OpenLog opens the file named by GALACTIC_LOG for appending. With the
// variable unset, logs are discarded; the terminal belongs to the game.
func OpenLog() (io.WriteCloser, error) {
	path := GetEnv(EnvLogFile, "")
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// DataDir returns where player data is stored: GALACTIC_DATA_DIR, or a
// galactic directory under the user's config dir.
func DataDir() string {
	if dir := GetEnv(EnvDataDir, ""); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(base, "galactic")
}

// LoadTiers reads the difficulty table from the YAML file named by
// GALACTIC_TUNING, or returns the built-in table when unset.
func LoadTiers() (spawn.Tiers, error) {
	path := GetEnv(EnvTuning, "")
	if path == "" {
		return spawn.DefaultTiers(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return spawn.Tiers{}, fmt.Errorf("open tuning: %w", err)
	}
	defer f.Close()
	return spawn.LoadTiers(f)
}
