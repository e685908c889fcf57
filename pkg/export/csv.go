package export

import (
	"encoding/csv"
	"io"
)

// Leading columns added to CSV output when tables are grouped.
const (
	ColumnGrouping = "GROUPING"
	ColumnGroup    = "GROUP"
)

// writeCSV writes all tables as one CSV document. Grouped tables get
// GROUPING and GROUP columns so buckets stay distinguishable.
func writeCSV(w io.Writer, tables []Table) error {
	cw := csv.NewWriter(w)
	grouped := isGrouped(tables)

	headerWritten := false
	for _, t := range tables {
		if !headerWritten {
			header := t.Columns
			if grouped {
				header = append([]string{ColumnGrouping, ColumnGroup}, header...)
			}
			if err := cw.Write(header); err != nil {
				return err
			}
			headerWritten = true
		}
		for _, row := range t.Strings() {
			if grouped {
				row = append([]string{t.Axis, t.Group}, row...)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func isGrouped(tables []Table) bool {
	for _, t := range tables {
		if t.Axis != "" {
			return true
		}
	}
	return false
}
