package app

import (
	"github.com/spf13/cobra"

	"github.com/forecasthealth/botech/cmd/botech/cmd/countries"
	"github.com/forecasthealth/botech/cmd/botech/cmd/matched"
	"github.com/forecasthealth/botech/cmd/botech/cmd/tables"
	"github.com/forecasthealth/botech/cmd/botech/cmd/wishlist"
)

// NewTablesCommand creates the tables command with app dependencies.
func (a *App) NewTablesCommand() *cobra.Command {
	return tables.NewCommand(a)
}

// NewCompareCommand creates the compare command with app dependencies.
func (a *App) NewCompareCommand() *cobra.Command {
	return tables.NewCompareCommand(a)
}

// NewRecordsCommand creates the records command with app dependencies.
func (a *App) NewRecordsCommand() *cobra.Command {
	return tables.NewRecordsCommand(a)
}

// NewWishListCommand creates the wishlist command with app dependencies.
func (a *App) NewWishListCommand() *cobra.Command {
	return wishlist.NewCommand(a)
}

// NewMatchedCommand creates the matched command with app dependencies.
func (a *App) NewMatchedCommand() *cobra.Command {
	return matched.NewCommand(a)
}

// NewCountriesCommand creates the countries command with app dependencies.
func (a *App) NewCountriesCommand() *cobra.Command {
	return countries.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("botech %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
