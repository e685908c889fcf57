// Package countries implements the countries command.
package countries

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech/internal/appcontext"
	"github.com/forecasthealth/botech/internal/cmd/output"
	"github.com/forecasthealth/botech/pkg/errors"
	"github.com/forecasthealth/botech/pkg/metadata"
)

// NewCommand creates the countries command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "countries [CODE...]",
		GroupID: "inspect",
		Short:   "List country metadata",
		Long: `Countries lists the country metadata used to derive region, income and
appendix_3 values. Given country codes it shows only those countries and
fails when one is unknown. With --category it lists the values of one
category and the countries in each.`,
		Example: `  botech countries
  botech countries KE ug
  botech countries --category income
  botech countries --metadata my-countries.yaml --format json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			adapter, err := app.Metadata()
			if err != nil {
				return err
			}

			var data output.Data
			switch {
			case category != "" && len(args) > 0:
				return errors.NewValidationError("category", category, "cannot be combined with country codes")
			case category != "":
				if data, err = categoryData(adapter, category); err != nil {
					return err
				}
			case len(args) > 0:
				found, err := lookup(adapter, args)
				if err != nil {
					return err
				}
				data = output.CountriesData(found)
			default:
				data = output.CountriesData(countries(adapter))
			}
			return output.NewFormatter(output.DetectFormat(string(format))).Format(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "",
		"List the values of a category: region, income or appendix_3")

	return cmd
}

func categoryData(adapter metadata.Adapter, category string) (output.Data, error) {
	switch category {
	case metadata.CategoryRegion, metadata.CategoryIncome, metadata.CategoryAppendix3:
	default:
		return output.Data{}, errors.NewValidationError("category", category,
			"must be one of: region, income, appendix_3")
	}
	values := adapter.CountriesByCategory(category)
	order := make([]string, 0, len(values))
	for v := range values {
		order = append(order, v)
	}
	sort.Strings(order)
	return output.CategoryData(category, values, order), nil
}

// countries lists every country the adapter knows, in code order.
func countries(adapter metadata.Adapter) []metadata.Country {
	if reg, ok := adapter.(*metadata.Registry); ok {
		return reg.Countries()
	}
	codes := adapter.AllCountryCodes()
	out := make([]metadata.Country, 0, len(codes))
	for _, code := range codes {
		if c, ok := adapter.Lookup(code); ok {
			out = append(out, c)
		}
	}
	return out
}

// lookup resolves codes in the order given.
func lookup(adapter metadata.Adapter, codes []string) ([]metadata.Country, error) {
	out := make([]metadata.Country, 0, len(codes))
	for _, code := range codes {
		c, ok := adapter.Lookup(code)
		if !ok {
			return nil, errors.NewNotFoundError("country", code)
		}
		out = append(out, c)
	}
	return out, nil
}
