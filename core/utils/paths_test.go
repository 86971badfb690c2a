package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"packetgen/core/apperr"
	"packetgen/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandVersion(t *testing.T) {
	tests := []struct {
		name      string
		tmpl      string
		version   string
		want      utils.VersionedPath
		configErr bool
	}{
		{"Plain", "proto/PacketIds.json", "", utils.VersionedPath{Path: "proto/PacketIds.json"}, false},
		{"PlainIgnoresVersion", "proto/PacketIds.json", "2.7.0", utils.VersionedPath{Path: "proto/PacketIds.json"}, false},
		{"Versioned", "proto/StarRail_{version}.proto", "2.7.0", utils.VersionedPath{Path: "proto/StarRail_2.7.0.proto", Versioned: true}, false},
		{"VersionMissing", "proto/StarRail_{version}.proto", "", utils.VersionedPath{}, true},
		{"Empty", "", "2.7.0", utils.VersionedPath{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ExpandVersion("remap.schema", tt.tmpl, tt.version)
			if tt.configErr {
				assert.ErrorIs(t, err, apperr.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckInput(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0o644))
	missing := filepath.Join(dir, "missing.txt")

	assert.NoError(t, utils.CheckInput("p", utils.VersionedPath{Path: present}))
	assert.ErrorIs(t, utils.CheckInput("p", utils.VersionedPath{Path: missing}), apperr.ErrSourceRead)
	assert.ErrorIs(t, utils.CheckInput("p", utils.VersionedPath{Path: missing, Versioned: true}), apperr.ErrConfiguration)
	assert.ErrorIs(t, utils.CheckInput("p", utils.VersionedPath{Path: dir}), apperr.ErrSourceRead)
}
