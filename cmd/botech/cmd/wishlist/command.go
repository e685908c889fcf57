// Package wishlist implements the wishlist command.
package wishlist

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech"
	"github.com/forecasthealth/botech/internal/appcontext"
	"github.com/forecasthealth/botech/internal/cmd/cmdutil"
	"github.com/forecasthealth/botech/internal/cmd/output"
)

// NewCommand creates the wishlist command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:     "wishlist",
		GroupID: "inspect",
		Short:   "Show the wish list a configuration requires",
		Long: `Wishlist resolves the configured filters against the record table and
country metadata and lists every (author, country, intervention, scenario)
combination a run requires. The size is printed to stderr.`,
		Example: `  botech wishlist --spec spec.yaml --data records.csv
  botech wishlist -s spec.yaml -d records.csv --summary`,
		Args: cobra.NoArgs,
	}
	in := cmdutil.AddInputFlags(cmd)
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Only print the wish list size")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		format, err := output.ParseFormat(app.OutputFormat())
		if err != nil {
			return err
		}

		adapter, err := app.Metadata()
		if err != nil {
			return err
		}
		cfg, source, err := in.Load(adapter)
		if err != nil {
			return err
		}

		candidates, entries, err := botech.WishList(cfg, source, botech.WithMetadata(adapter))
		if err != nil {
			return err
		}
		if len(candidates.DroppedCountries) > 0 {
			app.Logger().Warn().
				Strs("countries", candidates.DroppedCountries).
				Msg("Country filter names countries without metadata")
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "wish list size: %d (%d authors x %d countries x %d interventions x 2 scenarios)\n",
			len(entries), len(candidates.Authors), len(candidates.Countries), len(candidates.Interventions))
		if summaryOnly {
			return nil
		}

		return output.NewFormatter(output.DetectFormat(string(format))).
			Format(cmd.OutOrStdout(), output.EntriesData(entries))
	}
	return cmd
}
