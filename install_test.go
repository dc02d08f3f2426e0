package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	configPath = "/etc/pwmlights.conf"
	prefix := t.TempDir()

	require.NoError(t, install(prefix, false))

	info, err := os.Stat(filepath.Join(prefix, "usr/bin/pwmlights"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "binary is executable")

	unit, err := os.ReadFile(filepath.Join(prefix, "usr/lib/systemd/system/pwmlights.service"))
	require.NoError(t, err)
	assert.Contains(t, string(unit), "ExecStart=/usr/bin/pwmlights run -c /etc/pwmlights.conf")

	cfgPath := filepath.Join(prefix, configPath)
	cfg, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, configFile, string(cfg))

	require.NoError(t, os.WriteFile(cfgPath, []byte("# mine\n"), 0644))
	require.NoError(t, install(prefix, false))
	cfg, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(cfg), "existing config is kept")

	require.NoError(t, install(prefix, true))
	cfg, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, configFile, string(cfg), "reset restores the default")
}
