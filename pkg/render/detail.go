package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

const detailSource = `<div class="row gallery-detail" data-key="{{.Name}}">
<div class="col-md-4 mb-3">{{.Visual}}</div>
<div class="col-md-8">
<p class="lead">{{.Caption}}</p>
<div class="gallery-badges mb-3">{{range .Tasks}}<span class="badge bg-{{.Variant}} badge-task me-1" data-task="{{.Value}}">{{.Label}}</span>{{end}}<span class="badge bg-{{.Usage.Variant}} badge-usage" data-usable="{{.Usage.Value}}">{{.Usage.Label}}</span></div>
<dl class="row">
{{range .Fields}}<dt class="col-sm-3">{{.Label}}</dt><dd class="col-sm-9" data-field="{{.Key}}">{{if .Href}}<a href="{{.Href}}">{{.Value}}</a>{{else}}{{.Value}}{{end}}</dd>
{{end}}</dl>
</div>
</div>`

var _ = template.Must(templates.New("detail").Parse(detailSource))

// DetailField is one labelled property on a detail page.
type DetailField struct {
	Key   string
	Label string
	Value string
	Href  string
}

// DetailFields lists the entry properties shown on its detail page, in
// schema order. Empty optional values are omitted.
func DetailFields(entry *catalogs.Entry) []DetailField {
	fields := []DetailField{
		{Key: "url", Label: "URL", Value: entry.URL, Href: entry.URL},
		{Key: "pkg_url", Label: "Python package", Value: entry.PkgURL},
		{Key: "format", Label: "Format", Value: entry.Format},
		{Key: "pretrained", Label: "Pretrained", Value: yesNo(entry.Pretrained)},
		{Key: "labels_required", Label: "Labels required", Value: yesNo(entry.LabelsRequired)},
		{Key: "institution", Label: "Institution", Value: strings.Join(entry.Institution, ", ")},
		{Key: "tags", Label: "Tags", Value: strings.Join(entry.Tags, ", ")},
	}
	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// DetailHTML renders the body of an entry's detail page. The thumbnail
// falls back to a placeholder exactly as in the grid.
func DetailHTML(entry *catalogs.Entry, lookup ThumbnailFunc) (template.HTML, error) {
	if entry == nil {
		return "", errors.NewContractError("render", "detail requested for a nil entry")
	}
	visual, err := nodeHTML(thumbnail(lookup, entry))
	if err != nil {
		return "", err
	}
	tasks := make([]Badge, len(entry.Tasks))
	for i, t := range entry.Tasks {
		tasks[i] = TaskBadge(t)
	}
	return execute("detail", struct {
		Name    string
		Visual  template.HTML
		Caption string
		Tasks   []Badge
		Usage   Badge
		Fields  []DetailField
	}{entry.Name, visual, Caption(entry.Description), tasks, UsageBadge(entry.Usable()), DetailFields(entry)})
}

// WriteDetailPage writes a full page describing one entry.
func WriteDetailPage(w io.Writer, p Page, entry *catalogs.Entry, lookup ThumbnailFunc) error {
	body, err := DetailHTML(entry, lookup)
	if err != nil {
		return err
	}
	p.Body = body
	return WritePage(w, p)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
