// Package matched implements the matched command.
package matched

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech"
	"github.com/forecasthealth/botech/internal/appcontext"
	"github.com/forecasthealth/botech/internal/cmd/cmdutil"
	"github.com/forecasthealth/botech/internal/cmd/output"
	"github.com/forecasthealth/botech/pkg/config"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/export"
)

// NewCommand creates the matched command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:     "matched",
		GroupID: "inspect",
		Short:   "Show reconciled records and reconciliation statistics",
		Long: `Matched reconciles the record table against the wish list and prints
the surviving records as a table, followed by a summary of how many records
each step kept. Use --stats to print the step counts instead of the records.`,
		Example: `  botech matched --spec spec.yaml --data records.csv
  botech matched -s spec.yaml -d records.csv --stats --format yaml`,
		Args: cobra.NoArgs,
	}
	in := cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print step counts instead of records")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		adapter, err := app.Metadata()
		if err != nil {
			return err
		}
		cfg, source, err := in.Load(adapter)
		if err != nil {
			return err
		}
		cfg.DataType = config.DataRecords
		cfg.Groups = nil

		out, err := botech.Run(cmd.Context(), cfg, source,
			botech.WithMetadata(adapter),
			botech.WithLogger(app.Logger()),
		)
		if err != nil {
			return err
		}

		if showStats {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			return output.NewFormatter(output.DetectFormat(string(format))).
				Format(cmd.OutOrStdout(), output.StatisticsData(out.Reconciliation.Stats))
		}

		format := export.FormatTable
		if f := app.OutputFormat(); f != "" {
			if format, err = export.ParseFormat(f); err != nil {
				return err
			}
		}
		if err := export.Write(cmd.OutOrStdout(), format, out.Tables()); err != nil {
			return errors.WrapIO("write", string(format), err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), out.Reconciliation.Summary())
		return nil
	}
	return cmd
}
