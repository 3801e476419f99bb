package site

import (
	"bytes"
	"html/template"
	"io"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/render"
)

// Brand is the navigation brand shown on every page.
const Brand = "Scientific gallery"

var indexTemplate = template.Must(template.New("index").Parse(
	`<div class="list-group gallery-index">{{range .}}<a class="list-group-item list-group-item-action d-flex justify-content-between align-items-center" href="{{.Href}}" data-kind="{{.Kind}}">{{.Title}}<span class="badge bg-secondary rounded-pill">{{.Count}}</span></a>{{end}}</div>`))

// Nav builds the navigation bar, one link per loaded collection.
func Nav(kinds []catalogs.Kind, basePath string, active catalogs.Kind) []render.NavLink {
	links := make([]render.NavLink, len(kinds))
	for i, k := range kinds {
		links[i] = render.NavLink{
			Label:  k.Title(),
			Href:   basePath + k.GridPath(),
			Active: k == active,
		}
	}
	return links
}

func page(snap *gallery.Snapshot, basePath, title string, active catalogs.Kind) render.Page {
	return render.Page{
		Title:   title + " | " + Brand,
		Brand:   Brand,
		Home:    basePath + "/",
		Heading: title,
		Nav:     Nav(snap.Kinds(), basePath, active),
	}
}

// WriteIndex writes the landing page listing every collection.
func WriteIndex(w io.Writer, snap *gallery.Snapshot, basePath string) error {
	type item struct {
		Kind  string
		Title string
		Href  string
		Count int
	}
	var items []item
	for _, k := range snap.Kinds() {
		items = append(items, item{
			Kind:  k.String(),
			Title: k.Title(),
			Href:  basePath + k.GridPath(),
			Count: snap.Collection(k).Len(),
		})
	}

	var body bytes.Buffer
	if err := indexTemplate.Execute(&body, items); err != nil {
		return err
	}
	p := page(snap, basePath, "Gallery", "")
	p.Body = template.HTML(body.String()) //nolint:gosec // produced by html/template
	return render.WritePage(w, p)
}

// WriteGrid writes the grid page of one collection.
func WriteGrid(w io.Writer, snap *gallery.Snapshot, kind catalogs.Kind, basePath string) error {
	layout, err := snap.Layout(kind, basePath)
	if err != nil {
		return err
	}
	return render.WriteGridPage(w, page(snap, basePath, kind.Title(), kind), layout)
}

// WriteDetail writes the detail page of one entry. An unknown name is a
// NotFoundError.
func WriteDetail(w io.Writer, snap *gallery.Snapshot, kind catalogs.Kind, name, basePath string) error {
	entry, ok := snap.Collection(kind).Lookup(name)
	if !ok {
		return errors.NewNotFoundError(kind.String(), name)
	}
	return render.WriteDetailPage(w, page(snap, basePath, entry.Name, kind), entry,
		render.FromThumbnails(snap.Thumbnails(kind)))
}
