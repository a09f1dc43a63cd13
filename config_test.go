package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.ini"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	dbPath := filepath.Join(dir, "rows.bolt")

	content := "[storage]\nbackend = bolt\npath = " + dbPath + "\n\n[display]\nformat = yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, dbPath, cfg.StoragePath())
	assert.Equal(t, FormatYAML, cfg.Display.Format)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[display]\nformat = json\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, FormatJSON, cfg.Display.Format)
	assert.Equal(t, DefaultDBPath(BackendSQLite), cfg.StoragePath())
}

func TestDefaultDBPath(t *testing.T) {
	assert.Equal(t, "database.db", filepath.Base(DefaultDBPath(BackendSQLite)))
	assert.Equal(t, "database.bolt", filepath.Base(DefaultDBPath(BackendBolt)))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, "text", false).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, "json", true).Debug("shown", "rows", 4)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"rows":4`)
}
