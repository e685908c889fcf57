package export

import (
	"html/template"
	"io"
)

var htmlTemplate = template.Must(template.New("tables").Parse(`{{range .}}<section>
<h2>{{.Title}}</h2>
<table>
<thead>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Strings}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</section>
{{end}}`))

func writeHTML(w io.Writer, tables []Table) error {
	return htmlTemplate.Execute(w, tables)
}
