// Package output formats command listings that are not pipeline tables:
// countries, wish lists, reconciliation statistics and version details.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forecasthealth/botech/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Align is a column alignment for table output.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignRight
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return FormatterFunc(formatYAML)
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	if d, ok := data.(Data); ok {
		data = d.Objects()
	}
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

func formatYAML(w io.Writer, data any) error {
	if d, ok := data.(Data); ok {
		data = d.mapSlices()
	}
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format. Structs and slices of structs are
// converted through their json tags.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return renderTable(w, v)
	case *Data:
		return renderTable(w, *v)
	default:
		if d, ok := toData(data); ok {
			return renderTable(w, d)
		}
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func renderTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// Objects returns the rows keyed by header, for structured formats.
func (d Data) Objects() []map[string]string {
	out := make([]map[string]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		obj := make(map[string]string, len(d.Headers))
		for i, h := range d.Headers {
			if i < len(row) {
				obj[key(h)] = row[i]
			}
		}
		out = append(out, obj)
	}
	return out
}

// mapSlices keeps header order in YAML output.
func (d Data) mapSlices() []yaml.MapSlice {
	out := make([]yaml.MapSlice, 0, len(d.Rows))
	for _, row := range d.Rows {
		item := make(yaml.MapSlice, 0, len(d.Headers))
		for i, h := range d.Headers {
			if i < len(row) {
				item = append(item, yaml.MapItem{Key: key(h), Value: row[i]})
			}
		}
		out = append(out, item)
	}
	return out
}

func key(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "_")
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, json, yaml")
	}
}

// toData converts a struct or a non-empty slice of structs using reflection.
func toData(data any) (Data, bool) {
	v := reflect.Indirect(reflect.ValueOf(data))
	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && reflect.Indirect(v.Index(0)).Kind() == reflect.Struct:
		t := reflect.Indirect(v.Index(0)).Type()
		d := Data{Headers: headers(t)}
		for i := 0; i < v.Len(); i++ {
			elem := reflect.Indirect(v.Index(i))
			row := make([]string, 0, elem.NumField())
			for j := 0; j < elem.NumField(); j++ {
				if exported(t.Field(j)) {
					row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
				}
			}
			d.Rows = append(d.Rows, row)
		}
		return d, true
	case v.Kind() == reflect.Struct:
		t := v.Type()
		d := Data{Headers: []string{"Property", "Value"}}
		names := headers(t)
		n := 0
		for i := 0; i < t.NumField(); i++ {
			if !exported(t.Field(i)) {
				continue
			}
			d.Rows = append(d.Rows, []string{names[n], fmt.Sprintf("%v", v.Field(i).Interface())})
			n++
		}
		return d, true
	}
	return Data{}, false
}

func headers(t reflect.Type) []string {
	caser := cases.Title(language.English)
	var out []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !exported(field) {
			continue
		}
		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" {
				name = caser.String(strings.ReplaceAll(tag, "_", " "))
			}
		}
		out = append(out, name)
	}
	return out
}

func exported(f reflect.StructField) bool {
	return f.IsExported() && f.Tag.Get("json") != "-"
}
