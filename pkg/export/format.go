// Package export renders reconciled records and comparisons as tables.
//
// Results are first flattened into Tables, one per (axis, combination) pair
// for grouped output or a single unlabeled Table otherwise, and then written
// in one of the supported formats.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatHTML, FormatJSON, FormatYAML, FormatTable, FormatMarkdown}
}

// ParseFormat resolves a format name case-insensitively.
// "yml" and "md" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatHTML, FormatJSON, FormatYAML, FormatTable, FormatMarkdown:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "md":
		return FormatMarkdown, nil
	default:
		names := make([]string, 0, len(Formats()))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", errors.NewConfigError("output_format",
			fmt.Sprintf("unknown format %q: must be one of: %s", s, strings.Join(names, ", ")), nil)
	}
}

// Writer renders tables in one format.
type Writer interface {
	Write(w io.Writer, tables []Table) error
}

// WriterFunc allows functions to implement Writer.
type WriterFunc func(io.Writer, []Table) error

// Write implements Writer.
func (f WriterFunc) Write(w io.Writer, tables []Table) error {
	return f(w, tables)
}

// NewWriter returns the writer for a format.
func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return WriterFunc(writeCSV), nil
	case FormatHTML:
		return WriterFunc(writeHTML), nil
	case FormatJSON:
		return &JSONWriter{Indent: "  "}, nil
	case FormatYAML:
		return WriterFunc(writeYAML), nil
	case FormatTable:
		return WriterFunc(writeText), nil
	case FormatMarkdown:
		return WriterFunc(writeMarkdown), nil
	default:
		parsed, err := ParseFormat(string(format))
		if err != nil {
			return nil, err
		}
		return NewWriter(parsed)
	}
}

// Write renders tables to w in the given format.
func Write(w io.Writer, format Format, tables []Table) error {
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}
	return writer.Write(w, tables)
}
