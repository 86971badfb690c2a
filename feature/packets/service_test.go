package packets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packetgen/core/apperr"
	"packetgen/core/artifact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T, table string, mutate func(*Config)) (*Service, *artifact.FileSink, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "proto"), 0o755))
	if table != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "proto", "PacketIds.json"), []byte(table), 0o644))
	}

	cfg := Config{
		Table:        filepath.Join(dir, "proto", "PacketIds.json"),
		OutputDir:    filepath.Join(dir, "out"),
		IDsFile:      "packet_ids.go",
		NamesFile:    "packet_names.go",
		RegistryFile: "packet_registry.go",
		Package:      "reliquary",
		ProtoImport:  "github.com/Fesaa/go-reliquary/pb",
		ProtoAlias:   "pb",
		Ordering:     "id",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	opts, err := cfg.Resolve("2.7.0")
	require.NoError(t, err)

	sink := artifact.NewFileSink(zap.NewNop())
	return NewService(opts, sink, zap.NewNop()), sink, dir
}

func TestService_Generate(t *testing.T) {
	svc, _, dir := setupService(t, `{"200": "Pong", "100": "Ping", "42": "Broken"}`, nil)

	res, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, 2, res.Registered)
	assert.Equal(t, 1, res.Excluded)
	assert.Equal(t, []uint16{83, 2828, 4711, 4720, 4745, 5638}, res.UnknownExclusions)
	assert.Empty(t, res.Unformatted)

	ids, err := os.ReadFile(filepath.Join(dir, "out", "packet_ids.go"))
	require.NoError(t, err)
	assert.Contains(t, string(ids), "Broken = 42\n\tPing   = 100\n\tPong   = 200\n")

	registry, err := os.ReadFile(filepath.Join(dir, "out", "packet_registry.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(registry), "pb.Broken")
	assert.Contains(t, string(registry), "100: func() proto.Message { return &pb.Ping{} },")
}

func TestService_GenerateIsIdempotent(t *testing.T) {
	svc, _, dir := setupService(t, `{"200": "Pong", "100": "Ping"}`, nil)

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)
	first := readOutputs(t, dir)

	_, err = svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, readOutputs(t, dir))
}

func TestService_ParseErrorWritesNothing(t *testing.T) {
	svc, _, dir := setupService(t, `{"100": "Ping",`, nil)

	_, err := svc.Generate(context.Background())
	assert.ErrorIs(t, err, apperr.ErrParse)

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestService_MissingTable(t *testing.T) {
	svc, _, _ := setupService(t, "", nil)

	_, err := svc.Generate(context.Background())
	assert.ErrorIs(t, err, apperr.ErrSourceRead)
}

func TestService_VersionedExclusions(t *testing.T) {
	svc, _, dir := setupService(t, `{"100": "Ping", "200": "Pong"}`, func(c *Config) {
		c.Exclusions = filepath.Join(c.OutputDir, "..", "proto", "exclusions.json")
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proto", "exclusions.json"), []byte(`{"2.7.0": [200]}`), 0o644))

	res, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Registered)
	assert.Empty(t, res.UnknownExclusions)
}

func TestService_MissingVersionedExclusions(t *testing.T) {
	svc, _, _ := setupService(t, `{"100": "Ping"}`, func(c *Config) {
		c.Exclusions = filepath.Join(c.OutputDir, "exclusions_{version}.json")
	})

	_, err := svc.Generate(context.Background())
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestService_Check(t *testing.T) {
	svc, sink, dir := setupService(t, `{"100": "Ping"}`, nil)

	stale, err := svc.Check(context.Background(), sink)
	require.NoError(t, err)
	assert.Len(t, stale, 3)

	_, err = svc.Generate(context.Background())
	require.NoError(t, err)

	stale, err = svc.Check(context.Background(), sink)
	require.NoError(t, err)
	assert.Empty(t, stale)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "out", "packet_names.go"), []byte("edited"), 0o644))
	stale, err = svc.Check(context.Background(), sink)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "out", "packet_names.go")}, stale)
}

func TestService_OrderingAppliesToEveryArtifact(t *testing.T) {
	svc, _, _ := setupService(t, `{"2": "Beta", "1": "Gamma", "3": "Alpha"}`, func(c *Config) {
		c.Ordering = "name"
	})

	res, err := svc.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Artifacts, 3)

	for _, a := range res.Artifacts {
		out := string(a.Data)
		alpha, beta, gamma := strings.Index(out, "Alpha"), strings.Index(out, "Beta"), strings.Index(out, "Gamma")
		assert.True(t, alpha < beta && beta < gamma, "%s is not ordered by name", a.Path)
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := Config{
		Table:        "proto/PacketIds_{version}.json",
		OutputDir:    "gen",
		IDsFile:      "ids.go",
		NamesFile:    "names.go",
		RegistryFile: "registry.go",
		Ordering:     "insertion",
	}

	opts, err := cfg.Resolve("2.7.0")
	require.NoError(t, err)
	assert.Equal(t, "proto/PacketIds_2.7.0.json", opts.Table.Path)
	assert.True(t, opts.Table.Versioned)
	assert.Nil(t, opts.Exclusions)
	assert.Equal(t, filepath.Join("gen", "ids.go"), opts.IDsPath)
	assert.Equal(t, OrderInsertion, opts.Ordering)
	assert.Equal(t, "reliquary", opts.Emit.Package)

	_, err = cfg.Resolve("")
	assert.ErrorIs(t, err, apperr.ErrConfiguration)

	cfg.Table = "proto/PacketIds.json"
	cfg.Ordering = "shuffled"
	_, err = cfg.Resolve("")
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func readOutputs(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	for _, name := range []string{"packet_ids.go", "packet_names.go", "packet_registry.go"} {
		data, err := os.ReadFile(filepath.Join(dir, "out", name))
		require.NoError(t, err)
		out[name] = string(data)
	}
	return out
}
