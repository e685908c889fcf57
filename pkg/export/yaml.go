package export

import (
	"io"

	"github.com/goccy/go-yaml"
)

type yamlTable struct {
	Axis       string          `yaml:"axis,omitempty"`
	Group      string          `yaml:"group,omitempty"`
	Annotation string          `yaml:"annotation"`
	Rows       []yaml.MapSlice `yaml:"rows"`
}

func writeYAML(w io.Writer, tables []Table) error {
	out := make([]yamlTable, 0, len(tables))
	for _, t := range tables {
		rows := make([]yaml.MapSlice, 0, len(t.Rows))
		for _, r := range t.Rows {
			row := make(yaml.MapSlice, 0, len(t.Columns))
			for i, col := range t.Columns {
				var value any
				if i < len(r) {
					value = r[i]
					if n, ok := value.(Number); ok {
						value = float64(n)
					}
				}
				row = append(row, yaml.MapItem{Key: col, Value: value})
			}
			rows = append(rows, row)
		}
		out = append(out, yamlTable{Axis: t.Axis, Group: t.Group, Annotation: t.Annotation, Rows: rows})
	}

	data, err := yaml.MarshalWithOptions(out,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
