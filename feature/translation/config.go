package translation

import (
	"packetgen/core/apperr"
	"packetgen/core/utils"
)

// StoreKind selects where the override table is persisted.
type StoreKind string

const (
	// StoreFile keeps overrides in a JSON file.
	StoreFile StoreKind = "file"
	// StoreDatabase keeps overrides in the configured database.
	StoreDatabase StoreKind = "database"
)

// Config holds configuration for the schema remap pipeline.
type Config struct {
	// Translations is the path template of the "old -> new" translation file.
	Translations string `mapstructure:"translations" default:"proto/nameTranslation_{version}.txt"`
	// Schema is the path template of the raw protobuf schema.
	Schema string `mapstructure:"schema" default:"proto/StarRail_{version}.proto"`
	// Output is the path template of the translated schema.
	Output string `mapstructure:"output" default:"proto/StarRail_{version}.translated.proto"`
	// Overrides is the path template of the persisted override table (file store).
	Overrides string `mapstructure:"overrides" default:"field_mappings.json"`
	// Separator splits old and new tokens in the translation file.
	Separator string `mapstructure:"separator" default:" -> "`
	// Precedence decides conflicting keys (persisted, fresh).
	Precedence string `mapstructure:"precedence" default:"persisted"`
	// Match selects literal substring or whole-token substitution.
	Match string `mapstructure:"match" default:"literal"`
	// Store selects the override store (file, database).
	Store string `mapstructure:"store" default:"file"`
}

// Options is a resolved Config for one version.
type Options struct {
	Version      string
	Translations utils.VersionedPath
	Schema       utils.VersionedPath
	OutputPath   string
	// OverridesPath is only set for the file store.
	OverridesPath string
	Separator     string
	Precedence    Precedence
	Match         MatchMode
	Store         StoreKind
}

// Resolve expands path templates for version and validates enumerations.
func (c Config) Resolve(version string) (*Options, error) {
	translations, err := utils.ExpandVersion("remap.translations", c.Translations, version)
	if err != nil {
		return nil, err
	}
	schema, err := utils.ExpandVersion("remap.schema", c.Schema, version)
	if err != nil {
		return nil, err
	}
	output, err := utils.ExpandVersion("remap.output", c.Output, version)
	if err != nil {
		return nil, err
	}
	if output.Path == schema.Path {
		return nil, apperr.Configuration("remap.output", "output %s would overwrite the input schema", output.Path)
	}

	precedence, err := ParsePrecedence(c.Precedence)
	if err != nil {
		return nil, err
	}
	match, err := ParseMatchMode(c.Match)
	if err != nil {
		return nil, err
	}

	opts := &Options{
		Version:      version,
		Translations: translations,
		Schema:       schema,
		OutputPath:   output.Path,
		Separator:    c.Separator,
		Precedence:   precedence,
		Match:        match,
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}

	switch StoreKind(c.Store) {
	case StoreFile, "":
		overrides, err := utils.ExpandVersion("remap.overrides", c.Overrides, version)
		if err != nil {
			return nil, err
		}
		opts.Store = StoreFile
		opts.OverridesPath = overrides.Path
	case StoreDatabase:
		opts.Store = StoreDatabase
	default:
		return nil, apperr.Configuration("remap.store", "unknown store %q (want file or database)", c.Store)
	}

	return opts, nil
}
