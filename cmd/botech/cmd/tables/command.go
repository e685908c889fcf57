// Package tables implements the pipeline commands that write record or
// comparison tables: tables, compare and records.
package tables

import (
	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech"
	"github.com/forecasthealth/botech/internal/appcontext"
	"github.com/forecasthealth/botech/internal/cmd/cmdutil"
	"github.com/forecasthealth/botech/pkg/config"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
	"github.com/forecasthealth/botech/pkg/records"
)

// NewCommand creates the tables command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tables",
		GroupID: "core",
		Short:   "Reconcile records and write result tables",
		Long: `Tables runs the full pipeline: it builds the wish list from the
configuration, reconciles the record table against it, optionally compares
the two scenarios, groups the result and writes it in the chosen format.`,
		Example: `  botech tables --spec spec.yaml --data records.csv
  botech tables -s spec.yaml -d records.csv --type comparisons --format markdown`,
		Args: cobra.NoArgs,
	}
	in := cmdutil.AddInputFlags(cmd)
	out := cmdutil.AddOutputFlags(cmd, true)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd, app, in, out, "")
	}
	return cmd
}

// NewCompareCommand creates the compare command, a shorthand for
// tables --type comparisons.
func NewCompareCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "core",
		Short:   "Compare the two scenarios of reconciled records",
		Example: `  botech compare --spec spec.yaml --data records.csv --format table`,
		Args:    cobra.NoArgs,
	}
	in := cmdutil.AddInputFlags(cmd)
	out := cmdutil.AddOutputFlags(cmd, false)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd, app, in, out, config.DataComparisons)
	}
	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, in *cmdutil.InputFlags, out *cmdutil.OutputFlags, dataType config.DataType) error {
	adapter, err := app.Metadata()
	if err != nil {
		return err
	}
	cfg, source, err := in.Load(adapter)
	if err != nil {
		return err
	}
	if err := out.Apply(&cfg, app.OutputFormat()); err != nil {
		return err
	}
	if dataType != "" {
		cfg.DataType = dataType
	}

	format := cfg.OutputFormat
	if format == "" {
		format = botech.DefaultFormat
	}

	result, err := botech.Run(cmd.Context(), cfg, source,
		botech.WithMetadata(adapter),
		botech.WithLogger(app.Logger()),
	)
	if err != nil {
		return err
	}
	return out.Save(cmd.OutOrStdout(), format, result.Tables())
}

// NewRecordsCommand creates the records command, which filters the record
// table literally without reconciling it.
func NewRecordsCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		GroupID: "core",
		Short:   "Filter records without reconciliation",
		Long: `Records keeps the records whose scenario is one of the two configured
scenarios and whose values are allowed by every configured filter.
Geographic filters match the derived region, income and appendix_3 values.`,
		Example: `  botech records --spec spec.yaml --data records.csv --format json`,
		Args:    cobra.NoArgs,
	}
	in := cmdutil.AddInputFlags(cmd)
	out := cmdutil.AddOutputFlags(cmd, false)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		adapter, err := app.Metadata()
		if err != nil {
			return err
		}
		cfg, source, err := in.Load(adapter)
		if err != nil {
			return err
		}
		if err := out.Apply(&cfg, app.OutputFormat()); err != nil {
			return err
		}
		format := cfg.OutputFormat
		if format == "" {
			format = botech.DefaultFormat
		}

		filtered := records.Filter(source, cfg.Scenarios, cfg.Filters)
		app.Logger().Debug().
			Int("source_records", len(source)).
			Int("filtered_records", len(filtered)).
			Msg("Filtered records")
		if len(filtered) == 0 {
			return errors.NewNoDataError("filter", len(source), 0)
		}

		return out.Save(cmd.OutOrStdout(), format, []export.Table{export.RecordsTable(filtered)})
	}
	return cmd
}
