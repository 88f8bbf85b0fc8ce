package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	// ArchiveConfig controls unpack/pack behavior for resource archives.
	ArchiveConfig struct {
		Workers   int  `yaml:"workers" validate:"min=1"`
		VerifyCRC bool `yaml:"verify_crc"`
	}

	// LtxConfig controls schema lookup for textual configuration files.
	LtxConfig struct {
		SchemaDir   string   `yaml:"schema_dir,omitempty" validate:"omitempty"`
		IncludeDirs []string `yaml:"include_dirs,omitempty"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Archive ArchiveConfig `yaml:"archive"`
		Ltx     LtxConfig     `yaml:"ltx"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func unmarshalConfig(data []byte, cfg *Config, validateResult bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal directly here.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if validateResult {
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("configuration failed validation: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposing its values on top of the embedded defaults, and validates
// the result. An empty path returns the defaults unmodified.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{}, len(path) == 0)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process config file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the embedded default configuration as bytes, for use by a
// "dump defaults" command.
func Prepare() ([]byte, error) {
	return defaultConfig, nil
}

// Dump marshals an active configuration back to YAML, e.g. for inspection.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
