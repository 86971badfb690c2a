package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"packetgen/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "proto/PacketIds.json", cfg.Packets.Table)
	assert.Equal(t, "packet_registry.go", cfg.Packets.RegistryFile)
	assert.Equal(t, "id", cfg.Packets.Ordering)
	assert.Equal(t, " -> ", cfg.Remap.Separator)
	assert.Equal(t, "proto/StarRail_{version}.proto", cfg.Remap.Schema)
	assert.Equal(t, "file", cfg.Remap.Store)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	// Registered so the values written by the .env overlay are restored.
	for _, key := range []string{"BUILD_VERSION", "REMAP_STORE", "PACKETS_ORDERING", "STORAGE_ENABLED"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	env := "BUILD_VERSION=2.7.0\nREMAP_STORE=database\nPACKETS_ORDERING=name\nSTORAGE_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "2.7.0", cfg.Build.Version)
	assert.Equal(t, "database", cfg.Remap.Store)
	assert.Equal(t, "name", cfg.Packets.Ordering)
	assert.True(t, cfg.Storage.Enabled)

	opts, err := cfg.Packets.Resolve(cfg.Build.Version)
	require.NoError(t, err)
	assert.Equal(t, "proto/PacketIds.json", opts.Table.Path)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("REMAP_MATCH", "token")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Remap.Match)
	assert.Equal(t, "json", cfg.Log.Format)
}
