package config

import (
	"reflect"
	"strings"

	"packetgen/core/database"
	"packetgen/core/logger"
	"packetgen/core/storage"
	"packetgen/feature/packets"
	"packetgen/feature/translation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the generator.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Build holds settings shared by every pipeline.
	Build BuildConfig `mapstructure:"build"`
	// Packets holds configuration for the packet id code generator.
	Packets packets.Config `mapstructure:"packets"`
	// Remap holds configuration for the schema remap pipeline.
	Remap translation.Config `mapstructure:"remap"`
	// Storage holds configuration for publishing artifacts to object storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the override database.
	Database database.Config `mapstructure:"database"`
}

// BuildConfig holds settings shared by every pipeline.
type BuildConfig struct {
	// Version is the game build whose files are processed, e.g. "2.7.0".
	// It is substituted for {version} in path templates.
	Version string `mapstructure:"version" default:""`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. BUILD_VERSION -> build.version)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
