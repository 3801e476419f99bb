// Package docs generates Markdown documentation for the gallery
// collections: an index page and one page per collection listing every
// accepted entry with shields.io task badges, followed by the records
// that failed validation.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/logging"
)

// Generator writes collection documentation to a directory.
type Generator struct {
	outputDir   string
	siteURL     string
	frontMatter bool
}

// Option is a functional option for configuring the Generator.
type Option func(*Generator)

// WithOutputDir sets the output directory for generated documentation.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithSiteURL links entry names to their detail pages under url.
func WithSiteURL(url string) Option {
	return func(g *Generator) {
		g.siteURL = strings.TrimSuffix(url, "/")
	}
}

// WithFrontMatter prefixes every page with a Hugo front matter block.
func WithFrontMatter(enabled bool) Option {
	return func(g *Generator) {
		g.frontMatter = enabled
	}
}

// New creates a new documentation generator.
func New(opts ...Option) *Generator {
	g := &Generator{outputDir: "./docs"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes README.md and one <collection>.md per loaded
// collection. It returns the written file paths.
func (g *Generator) Generate(ctx context.Context, snap *gallery.Snapshot) ([]string, error) {
	logger := logging.FromContext(ctx)
	if err := os.MkdirAll(g.outputDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", g.outputDir, err)
	}

	var written []string
	write := func(name string, render func(io.Writer) error) error {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		p := filepath.Join(g.outputDir, name)
		if err := os.WriteFile(p, buf.Bytes(), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", p, err)
		}
		written = append(written, p)
		logger.Debug().Str("file", p).Msg("Wrote documentation page")
		return nil
	}

	if err := write("README.md", func(w io.Writer) error { return g.WriteIndex(w, snap) }); err != nil {
		return written, err
	}
	for i, kind := range snap.Kinds() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		weight := i + 1
		if err := write(kind.Plural()+".md", func(w io.Writer) error {
			return g.WriteCollection(w, snap, kind, weight)
		}); err != nil {
			return written, err
		}
	}

	logger.Info().Int("files", len(written)).Str("dir", g.outputDir).Msg("Documentation generated")
	return written, nil
}

// WriteIndex writes the overview page: one row per collection.
func (g *Generator) WriteIndex(w io.Writer, snap *gallery.Snapshot) error {
	if err := g.writeFrontMatter(w, "Gallery", 0, "Catalog collections"); err != nil {
		return err
	}

	rows := make([][]string, 0, len(snap.Kinds()))
	for _, kind := range snap.Kinds() {
		rows = append(rows, []string{
			md.Link(kind.Title(), "./"+kind.Plural()+".md"),
			fmt.Sprintf("%d", snap.Collection(kind).Len()),
			fmt.Sprintf("%d", len(snap.Rejected(kind))),
			md.Code(snap.Source(kind)),
		})
	}

	return md.NewMarkdown(w).
		H1("Gallery").
		PlainTextf("Generated from the collections loaded at %s.", snap.LoadedAt().Format("2006-01-02 15:04 UTC")).
		LF().
		Table(md.TableSet{
			Header: []string{"Collection", "Entries", "Rejected", "Source"},
			Rows:   rows,
		}).
		Build()
}

// WriteCollection writes the page for one collection.
func (g *Generator) WriteCollection(w io.Writer, snap *gallery.Snapshot, kind catalogs.Kind, weight int) error {
	if err := g.writeFrontMatter(w, kind.Title(), weight, ""); err != nil {
		return err
	}

	collection := snap.Collection(kind)
	rows := make([][]string, 0, collection.Len())
	for _, e := range collection.Entries() {
		rows = append(rows, []string{
			g.entryName(kind, e),
			taskBadges(e.Tasks),
			yesNo(e.Pretrained),
			yesNo(e.LabelsRequired),
			usageBadge(e),
			escapeCell(e.Description),
		})
	}

	doc := md.NewMarkdown(w).
		H1(kind.Title()).
		PlainTextf("%d entries.", collection.Len()).
		LF().
		Table(md.TableSet{
			Header: []string{"Name", "Tasks", "Pretrained", "Labels required", "Usage", "Description"},
			Rows:   rows,
		})

	if rejected := snap.Rejected(kind); len(rejected) > 0 {
		var items []string
		for _, r := range rejected {
			label := fmt.Sprintf("record %d", r.Index)
			if r.Name != "" {
				label = fmt.Sprintf("%s (%s)", label, md.Code(r.Name))
			}
			items = append(items, fmt.Sprintf("%s: %s", label, escapeCell(r.Errors.Error())))
		}
		doc = doc.H2("Rejected records").BulletList(items...)
	}

	return doc.Build()
}

func (g *Generator) entryName(kind catalogs.Kind, e *catalogs.Entry) string {
	name := escapeCell(e.Name)
	switch {
	case g.siteURL != "":
		return md.Link(name, g.siteURL+kind.DetailPath(e.Name))
	case e.URL != "":
		return md.Link(name, e.URL)
	default:
		return name
	}
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Weight      int    `yaml:"weight"`
}

func (g *Generator) writeFrontMatter(w io.Writer, title string, weight int, description string) error {
	if !g.frontMatter {
		return nil
	}
	data, err := yaml.Marshal(frontMatter{Title: title, Description: description, Weight: weight})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "---\n%s---\n\n", data)
	return err
}

// escapeCell keeps free text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
