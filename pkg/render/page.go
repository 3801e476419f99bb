package render

import (
	"html/template"
	"io"
)

// Bootstrap assets referenced by full pages.
const (
	BootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	BootstrapJS  = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js"
)

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.Stylesheet}}">
<style>.gridtext { font-size: 0.9rem; margin-top: 0.5rem; } .gallery-link { color: inherit; text-decoration: none; }</style>
</head>
<body>
<nav class="navbar navbar-expand bg-body-tertiary mb-4"><div class="container">{{if .Home}}<a class="navbar-brand" href="{{.Home}}">{{.Brand}}</a>{{else}}<span class="navbar-brand">{{.Brand}}</span>{{end}}<div class="navbar-nav">{{range .Nav}}<a class="nav-link{{if .Active}} active{{end}}" href="{{.Href}}">{{.Label}}</a>{{end}}</div></div></nav>
<main class="container">
<h1 class="mb-4">{{.Heading}}</h1>
{{.Body}}
</main>
<script src="{{.Script}}"></script>
<script>document.querySelectorAll('[data-bs-toggle="popover"]').forEach(function (el) { new bootstrap.Popover(el); });</script>
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

// NavLink is one entry of the page navigation bar.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// Page is a complete HTML document around a rendered fragment.
type Page struct {
	Title   string
	Brand   string
	Home    string
	Heading string
	Nav     []NavLink
	Body    template.HTML
}

// WritePage writes p as a standalone HTML document.
func WritePage(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, struct {
		Page
		Stylesheet string
		Script     string
	}{p, BootstrapCSS, BootstrapJS})
}

// WriteGridPage renders l and writes it as a full page.
func WriteGridPage(w io.Writer, p Page, l *Layout) error {
	body, err := LayoutHTML(l)
	if err != nil {
		return err
	}
	p.Body = body
	return WritePage(w, p)
}
