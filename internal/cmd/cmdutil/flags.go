// Package cmdutil provides the input flags shared by the pipeline commands.
package cmdutil

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech/pkg/config"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
	"github.com/forecasthealth/botech/pkg/metadata"
	"github.com/forecasthealth/botech/pkg/records"
	"github.com/forecasthealth/botech/pkg/save"
)

// InputFlags holds the configuration and data file flags.
type InputFlags struct {
	Spec string
	Data string
}

// AddInputFlags adds --spec and --data to a command and marks both required.
func AddInputFlags(cmd *cobra.Command) *InputFlags {
	flags := &InputFlags{}

	cmd.Flags().StringVarP(&flags.Spec, "spec", "s", "",
		"Configuration file (YAML or JSON)")
	cmd.Flags().StringVarP(&flags.Data, "data", "d", "",
		"Record table (CSV)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("data")

	return flags
}

// Load reads the configuration and the record table.
func (f *InputFlags) Load(adapter metadata.Adapter) (config.Config, []records.Record, error) {
	if f.Spec == "" {
		return config.Config{}, nil, errors.NewConfigError("flags", "--spec is required", nil)
	}
	if f.Data == "" {
		return config.Config{}, nil, errors.NewConfigError("flags", "--data is required", nil)
	}

	cfg, err := config.Load(f.Spec)
	if err != nil {
		return config.Config{}, nil, err
	}
	source, err := records.LoadCSV(f.Data, adapter)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, source, nil
}

// OutputFlags holds the pipeline output flags.
type OutputFlags struct {
	Type string
	Out  string
}

// AddOutputFlags adds --out to a command, and --type when withType is set.
func AddOutputFlags(cmd *cobra.Command, withType bool) *OutputFlags {
	flags := &OutputFlags{}

	if withType {
		cmd.Flags().StringVarP(&flags.Type, "type", "t", "",
			"Data type: records or comparisons (overrides the configuration)")
	}
	cmd.Flags().StringVar(&flags.Out, "out", "",
		"Write output to a file instead of stdout")

	return flags
}

// Apply overrides the configuration with --type and the global --format
// flag when they were given.
func (f *OutputFlags) Apply(cfg *config.Config, format string) error {
	if f.Type != "" {
		dt, err := config.ParseDataType(f.Type)
		if err != nil {
			return err
		}
		cfg.DataType = dt
	}
	if format != "" {
		parsed, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		cfg.OutputFormat = parsed
	}
	return nil
}

// Save writes tables to --out, or to w when --out is unset.
func (f *OutputFlags) Save(w io.Writer, format export.Format, tables []export.Table) error {
	return save.Tables(tables,
		save.WithFormat(format),
		save.WithWriter(w),
		save.WithPath(f.Out),
	)
}
