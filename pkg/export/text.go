package export

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeText renders each table for a terminal, numbers right-aligned.
func writeText(w io.Writer, tables []Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s (%d rows)\n", t.Title(), len(t.Rows)); err != nil {
			return err
		}
		if err := renderTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, t Table) error {
	align := make([]tw.Align, len(t.Columns))
	for i := range t.Columns {
		align[i] = tw.AlignLeft
		if len(t.Rows) > 0 && i < len(t.Rows[0]) {
			if _, numeric := t.Rows[0][i].(Number); numeric {
				align[i] = tw.AlignRight
			}
		}
	}

	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	headers := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = headerTitle(c)
	}
	table.Header(headers...)

	for _, row := range t.Strings() {
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
