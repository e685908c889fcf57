package export

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONWriter writes tables as a JSON array of objects.
type JSONWriter struct {
	Indent string
}

type jsonTable struct {
	Axis       string    `json:"axis,omitempty"`
	Group      string    `json:"group,omitempty"`
	Annotation string    `json:"annotation"`
	Rows       []jsonRow `json:"rows"`
}

// jsonRow encodes a row as an object with keys in column order.
type jsonRow struct {
	columns []string
	cells   Row
}

// Write implements Writer.
func (j *JSONWriter) Write(w io.Writer, tables []Table) error {
	out := make([]jsonTable, 0, len(tables))
	for _, t := range tables {
		rows := make([]jsonRow, 0, len(t.Rows))
		for _, r := range t.Rows {
			rows = append(rows, jsonRow{columns: t.Columns, cells: r})
		}
		out = append(out, jsonTable{Axis: t.Axis, Group: t.Group, Annotation: t.Annotation, Rows: rows})
	}

	encoder := json.NewEncoder(w)
	if j.Indent != "" {
		encoder.SetIndent("", j.Indent)
	}
	return encoder.Encode(out)
}

// MarshalJSON implements json.Marshaler.
func (r jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var cell any
		if i < len(r.cells) {
			cell = r.cells[i]
		}
		value, err := json.Marshal(cell)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler. JSON has no infinity, so
// non-finite numbers are written as strings such as "+Inf".
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsFinite() {
		return json.Marshal(n.String())
	}
	return json.Marshal(float64(n))
}
