// Package config loads and validates pipeline configuration files.
//
// A configuration names the two scenarios to compare and optionally
// restricts and groups the data:
//
//	scenarios: [baseline, scaled]
//	filters:
//	  region: [Sub-Saharan Africa]
//	  income: [Low income, Lower middle income]
//	groups:
//	  - [region]
//	  - [region, income]
//	data_type: comparisons
//	output_format: csv
//
// Dimension names are case-insensitive.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/forecasthealth/botech/pkg/dimensions"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
)

// DataType selects what a pipeline run returns.
type DataType string

// Data types.
const (
	DataRecords     DataType = "records"
	DataComparisons DataType = "comparisons"
)

// DefaultDataType is used when a configuration does not name one.
const DefaultDataType = DataRecords

// ParseDataType resolves a data type name case-insensitively.
// An empty name yields DefaultDataType.
func ParseDataType(s string) (DataType, error) {
	switch dt := DataType(strings.ToLower(strings.TrimSpace(s))); dt {
	case "":
		return DefaultDataType, nil
	case DataRecords, DataComparisons:
		return dt, nil
	default:
		return "", errors.NewConfigError("data_type",
			fmt.Sprintf("unknown data type %q: must be %q or %q", s, DataRecords, DataComparisons), nil)
	}
}

// File is the on-disk shape of a configuration.
type File struct {
	Scenarios    []string            `mapstructure:"scenarios" yaml:"scenarios" json:"scenarios"`
	Filters      map[string][]string `mapstructure:"filters" yaml:"filters,omitempty" json:"filters,omitempty"`
	Groups       [][]string          `mapstructure:"groups" yaml:"groups,omitempty" json:"groups,omitempty"`
	DataType     string              `mapstructure:"data_type" yaml:"data_type,omitempty" json:"data_type,omitempty"`
	OutputFormat string              `mapstructure:"output_format" yaml:"output_format,omitempty" json:"output_format,omitempty"`

	// DataFormat is an older name for OutputFormat.
	DataFormat string `mapstructure:"data_format" yaml:"data_format,omitempty" json:"data_format,omitempty"`
}

// Config is a validated configuration.
type Config struct {
	Scenarios dimensions.Scenarios
	Filters   dimensions.Filters
	Groups    []dimensions.GroupSpec
	DataType  DataType

	// OutputFormat is empty when the configuration leaves it to the caller.
	OutputFormat export.Format
}

// Grouped reports whether any group axis is configured.
func (c Config) Grouped() bool {
	return len(c.Groups) > 0
}

// Validate checks a Config built in code rather than through Parse.
// Every problem is a ConfigError.
func (c Config) Validate() error {
	if _, err := ParseDataType(string(c.DataType)); err != nil {
		return err
	}
	_, err := dimensions.NewScenarios([]string{c.Scenarios.One, c.Scenarios.Two})
	return err
}

// Parse validates a raw configuration. Every problem is a ConfigError.
func Parse(f File) (Config, error) {
	scenarios, err := dimensions.NewScenarios(f.Scenarios)
	if err != nil {
		return Config{}, err
	}

	filters, err := dimensions.ParseFilters(f.Filters)
	if err != nil {
		return Config{}, err
	}

	specs := make([]dimensions.GroupSpec, 0, len(f.Groups))
	for _, names := range f.Groups {
		spec, err := dimensions.ParseGroupSpec(names)
		if err != nil {
			return Config{}, err
		}
		specs = append(specs, spec)
	}

	dataType, err := ParseDataType(f.DataType)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Scenarios: scenarios,
		Filters:   filters,
		Groups:    specs,
		DataType:  dataType,
	}

	format := f.OutputFormat
	if format == "" {
		format = f.DataFormat
	}
	if format != "" {
		if cfg.OutputFormat, err = export.ParseFormat(format); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// Load reads a YAML or JSON configuration file and validates it.
// The file type is taken from the extension.
func Load(path string) (Config, error) {
	f, err := Read(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("loading configuration %s: %w", path, err)
	}
	return cfg, nil
}

// Read reads a configuration file without validating it.
func Read(path string) (File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json":
		v.SetConfigType("json")
	default:
		return File{}, errors.NewConfigError("config",
			fmt.Sprintf("unsupported configuration file type %q", filepath.Ext(path)), nil)
	}

	if _, err := os.Stat(path); err != nil {
		return File{}, errors.WrapIO("read", path, err)
	}
	if err := v.ReadInConfig(); err != nil {
		return File{}, errors.WrapParse(strings.TrimPrefix(filepath.Ext(path), "."), path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, errors.WrapConfig("config", err)
	}
	return f, nil
}
