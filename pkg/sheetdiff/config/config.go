// Package config loads sheetdiff settings from flags, environment and an
// optional .sheetdiff.yaml file.
package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration keys, shared by the YAML file, environment variables and
// flag bindings.
const (
	// KeyXLSX is the spreadsheet to parse.
	KeyXLSX = "xlsx"
	// KeyJSON is the stored document to compare against.
	KeyJSON = "json"
	// KeyEngine selects the cell reader: raw, excelize or xlsxreader.
	KeyEngine = "engine"
	// KeyMaxDiffs caps the listed differences; 0 lists all of them.
	KeyMaxDiffs = "max_diffs"
	// KeyTolerance is the absolute tolerance for numeric comparison.
	KeyTolerance = "tolerance"
	// KeySource overrides the workbook source label.
	KeySource = "source"
)

// EnvPrefix prefixes environment overrides, e.g. SHEETDIFF_XLSX.
const EnvPrefix = "SHEETDIFF"

// FileName is the config file name searched for in the working directory.
const FileName = ".sheetdiff"

// Config is the validated sheetdiff configuration.
type Config struct {
	XLSX      string  `mapstructure:"xlsx" validate:"required"`
	JSON      string  `mapstructure:"json" validate:"required"`
	Engine    string  `mapstructure:"engine" validate:"required,oneof=raw excelize xlsxreader"`
	MaxDiffs  int     `mapstructure:"max_diffs" validate:"gte=0"`
	Tolerance float64 `mapstructure:"tolerance" validate:"gte=0"`
	Source    string  `mapstructure:"source"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ReadFile reads the config file into v. An explicit path must exist;
// otherwise a missing .sheetdiff.yaml in dir is not an error.
func ReadFile(v *viper.Viper, explicit, dir string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// LoadAndValidate unmarshals and validates the settings held by v.
func LoadAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return LoadAndValidate(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# sheetdiff configuration
xlsx: "abitur-2025.xlsx"
json: "static/abitur-2025.json"
engine: "raw"
max_diffs: 50
tolerance: 1e-9
`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyXLSX, "abitur-2025.xlsx")
	v.SetDefault(KeyJSON, "static/abitur-2025.json")
	v.SetDefault(KeyEngine, "raw")
	v.SetDefault(KeyMaxDiffs, 50)
	v.SetDefault(KeyTolerance, 1e-9)
	v.SetDefault(KeySource, "")
}
