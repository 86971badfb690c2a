package packets

import (
	"path/filepath"

	"packetgen/core/utils"
)

// Config holds configuration for the packet generation pipeline.
type Config struct {
	// Table is the path template of the packet id JSON table.
	Table string `mapstructure:"table" default:"proto/PacketIds.json"`
	// Exclusions is the path template of the versioned exclusion table.
	// Empty uses the built-in exclusion set.
	Exclusions string `mapstructure:"exclusions" default:""`
	// OutputDir is the directory the generated Go files are written to.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// IDsFile is the file name of the constant declarations.
	IDsFile string `mapstructure:"ids_file" default:"packet_ids.go"`
	// NamesFile is the file name of the id to name lookup.
	NamesFile string `mapstructure:"names_file" default:"packet_names.go"`
	// RegistryFile is the file name of the id to message registry.
	RegistryFile string `mapstructure:"registry_file" default:"packet_registry.go"`
	// Package is the package clause of the generated files.
	Package string `mapstructure:"package" default:"reliquary"`
	// ProtoImport is the import path of the protobuf message package.
	ProtoImport string `mapstructure:"proto_import" default:"github.com/Fesaa/go-reliquary/pb"`
	// ProtoAlias is the identifier used for ProtoImport.
	ProtoAlias string `mapstructure:"proto_alias" default:"pb"`
	// Ordering is the entry order of every artifact (id, name, insertion).
	Ordering string `mapstructure:"ordering" default:"id"`
}

// Options is a resolved Config for one version.
type Options struct {
	Version      string
	Table        utils.VersionedPath
	Exclusions   *utils.VersionedPath
	IDsPath      string
	NamesPath    string
	RegistryPath string
	Ordering     Ordering
	Emit         EmitOptions
}

// Resolve expands path templates for version and validates enumerations.
func (c Config) Resolve(version string) (*Options, error) {
	table, err := utils.ExpandVersion("packets.table", c.Table, version)
	if err != nil {
		return nil, err
	}

	var exclusions *utils.VersionedPath
	if c.Exclusions != "" {
		p, err := utils.ExpandVersion("packets.exclusions", c.Exclusions, version)
		if err != nil {
			return nil, err
		}
		exclusions = &p
	}

	ordering, err := ParseOrdering(c.Ordering)
	if err != nil {
		return nil, err
	}

	outDir, err := utils.ExpandVersion("packets.output_dir", c.OutputDir, version)
	if err != nil {
		return nil, err
	}

	emit := DefaultEmitOptions()
	if c.Package != "" {
		emit.Package = c.Package
	}
	if c.ProtoImport != "" {
		emit.ProtoImport = c.ProtoImport
	}
	emit.ProtoAlias = c.ProtoAlias

	return &Options{
		Version:      version,
		Table:        table,
		Exclusions:   exclusions,
		IDsPath:      filepath.Join(outDir.Path, c.IDsFile),
		NamesPath:    filepath.Join(outDir.Path, c.NamesFile),
		RegistryPath: filepath.Join(outDir.Path, c.RegistryFile),
		Ordering:     ordering,
		Emit:         emit,
	}, nil
}
