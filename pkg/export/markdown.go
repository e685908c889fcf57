package export

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"
)

func writeMarkdown(w io.Writer, tables []Table) error {
	doc := md.NewMarkdown(w)
	for _, t := range tables {
		headers := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			headers[i] = headerTitle(c)
		}

		doc.H2(t.Title()).LF()
		if len(t.Rows) == 0 {
			doc.PlainText(md.Italic("no rows")).LF()
			continue
		}
		doc.Table(md.TableSet{
			Header: headers,
			Rows:   t.Strings(),
		}).LF()
		doc.PlainText(fmt.Sprintf("%d rows", len(t.Rows))).LF()
	}
	return doc.Build()
}
