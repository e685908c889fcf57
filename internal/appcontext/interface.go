// Package appcontext provides the shared application context interface
// used by all botech commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/forecasthealth/botech/pkg/metadata"
)

// Interface defines what commands need from the application.
// The App struct from cmd/botech/app implements it; commands accept the
// interface so tests can supply their own.
type Interface interface {
	// Metadata returns the country metadata adapter, loading it lazily.
	// A metadata file configured with --metadata or BOTECH_METADATA
	// replaces the embedded table.
	Metadata() (metadata.Adapter, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format flag value, or "" when unset.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
