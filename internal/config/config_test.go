package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Addr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9999\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsEmptyAddr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \"\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addr")
}
