package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

const fragments = `
{{define "grid"}}<div class="row {{.Class}}">{{range .Cells}}{{.}}{{end}}</div>{{end}}
{{define "cell"}}<div class="col mb-3"><a class="gallery-link" href="{{.Href}}" data-key="{{.Key}}">{{.Body}}</a></div>{{end}}
{{define "image"}}<img class="card-img-top" src="{{.Src}}" alt="{{.Alt}}">{{end}}
{{define "placeholder"}}<svg class="card-img-top placeholder-img" width="100%" role="img" aria-label="{{.Label}}" style="aspect-ratio: {{.AspectRatio}}" preserveAspectRatio="xMidYMid slice"><rect width="100%" height="100%" fill="{{.Fill}}"></rect><text x="50%" y="50%" fill="{{.TextColor}}" font-size="{{.FontSize}}" text-anchor="middle" dominant-baseline="middle">{{.Label}}</text></svg>{{end}}
{{define "popover"}}<div class="gallery-popover"><p class="mb-2">{{.Description}}</p><div class="gallery-badges">{{range .Tasks}}<span class="badge bg-{{.Variant}} badge-task me-1" data-task="{{.Value}}">{{.Label}}</span>{{end}}<span class="badge bg-{{.Usage.Variant}} badge-usage" data-usable="{{.Usage.Value}}">{{.Usage.Label}}</span></div></div>{{end}}
{{define "overlay"}}<span class="d-block" tabindex="0" data-bs-toggle="popover" data-bs-trigger="hover focus" data-bs-placement="{{.Placement}}" data-bs-html="true" data-bs-title="{{.Title}}" data-bs-content="{{.Content}}">{{.Child}}</span>{{end}}
{{define "captioned"}}{{.Child}}<div class="gridtext">{{.Caption}}</div>{{end}}
{{define "card"}}<div class="card h-100"><div class="card-body">{{.Child}}</div></div>{{end}}
`

var templates = template.Must(template.New("render").Parse(fragments))

// WriteLayout writes the grid as an HTML fragment.
func WriteLayout(w io.Writer, l *Layout) error {
	out, err := LayoutHTML(l)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(out))
	return err
}

// LayoutHTML renders the grid as an HTML fragment.
func LayoutHTML(l *Layout) (template.HTML, error) {
	cells := make([]template.HTML, len(l.Cells))
	for i, c := range l.Cells {
		out, err := CellHTML(c)
		if err != nil {
			return "", err
		}
		cells[i] = out
	}
	return execute("grid", struct {
		Class string
		Cells []template.HTML
	}{columnClasses(l.Columns), cells})
}

// CellHTML renders a single cell as an HTML fragment.
func CellHTML(c Cell) (template.HTML, error) {
	body, err := nodeHTML(c.Body)
	if err != nil {
		return "", err
	}
	return execute("cell", struct {
		Href string
		Key  string
		Body template.HTML
	}{c.Href, c.Key, body})
}

// PopoverHTML renders the popover body shown on hover or focus.
func PopoverHTML(p Popover) (template.HTML, error) {
	tasks := make([]Badge, len(p.TaskBadges))
	for i, t := range p.TaskBadges {
		tasks[i] = TaskBadge(t)
	}
	return execute("popover", struct {
		Description string
		Tasks       []Badge
		Usage       Badge
	}{p.Description, tasks, UsageBadge(p.UsageBadge)})
}

func nodeHTML(n Node) (template.HTML, error) {
	switch n := n.(type) {
	case *Image:
		return execute("image", n)
	case *Placeholder:
		return execute("placeholder", n)
	case *Overlay:
		child, err := nodeHTML(n.Child)
		if err != nil {
			return "", err
		}
		content, err := PopoverHTML(n.Popover)
		if err != nil {
			return "", err
		}
		return execute("overlay", struct {
			Placement string
			Title     string
			Content   string
			Child     template.HTML
		}{n.Placement, n.Popover.Title, string(content), child})
	case *Captioned:
		child, err := nodeHTML(n.Child)
		if err != nil {
			return "", err
		}
		return execute("captioned", struct {
			Child   template.HTML
			Caption string
		}{child, n.Caption})
	case *Card:
		child, err := nodeHTML(n.Child)
		if err != nil {
			return "", err
		}
		return execute("card", struct{ Child template.HTML }{child})
	default:
		return "", fmt.Errorf("render: unsupported node %T", n)
	}
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

func columnClasses(c Columns) string {
	return fmt.Sprintf("row-cols-%d row-cols-md-%d row-cols-lg-%d row-cols-xl-%d",
		c.Default, c.Medium, c.Large, c.ExtraLarge)
}
