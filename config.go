package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

type (
	StorageSection struct {
		Backend string `ini:"backend"`
		Path    string `ini:"path"`
	}

	DisplaySection struct {
		Format string `ini:"format"`
	}

	Config struct {
		Storage StorageSection `ini:"storage"`
		Display DisplaySection `ini:"display"`
	}
)

func DefaultConfig() Config {
	return Config{
		Storage: StorageSection{Backend: BackendSQLite},
		Display: DisplaySection{Format: FormatTable},
	}
}

func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "timesum", "config.ini")
}

// DefaultDBPath returns where the given backend keeps its file.
func DefaultDBPath(backend string) string {
	name := "database.db"
	if backend == BackendBolt {
		name = "database.bolt"
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "timesum", name)
}

// LoadConfig reads the ini file at path over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if err := file.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to map config: %w", err)
	}

	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	if cfg.Display.Format == "" {
		cfg.Display.Format = FormatTable
	}

	return cfg, nil
}

// StoragePath is the configured path or the backend default.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultDBPath(c.Storage.Backend)
}

func NewLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
