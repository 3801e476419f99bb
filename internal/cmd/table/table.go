// Package table converts gallery data into rows for tabular CLI output.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/gallery"
	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/pkg/catalogs"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

const descriptionWidth = 60

// EntriesToTableData converts catalog entries to table format. The
// thumbnail column shows the image reference from thumbs, or "-". Wide
// adds the locator, format and description columns.
func EntriesToTableData(entries []*catalogs.Entry, thumbs catalogs.Thumbnails, wide bool) Data {
	headers := []string{"Name", "Tasks", "Pretrained", "Labels", "Usable", "Thumbnail"}
	if wide {
		headers = append(headers, "Format", "URL", "Description")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		thumb := "-"
		if ref, ok := thumbs.Lookup(e.Name); ok {
			thumb = string(ref)
		}
		row := []string{
			e.Name,
			Tasks(e.Tasks),
			YesNo(e.Pretrained),
			YesNo(e.LabelsRequired),
			YesNo(e.Usable()),
			thumb,
		}
		if wide {
			row = append(row, e.Format, e.URL, Truncate(e.Description, descriptionWidth))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// RejectedToTableData lists every field error of every rejected record,
// one row per error.
func RejectedToTableData(rejected []loader.Rejected) Data {
	var rows [][]string
	for _, r := range rejected {
		name := r.Name
		if name == "" {
			name = "-"
		}
		for _, fe := range r.Errors {
			rows = append(rows, []string{
				strconv.Itoa(r.Index),
				name,
				fe.Field,
				string(fe.Kind),
				fe.Detail,
			})
		}
	}

	return Data{
		Headers:         []string{"#", "Name", "Field", "Problem", "Detail"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
}

// SummaryToTableData converts a snapshot summary to one row per collection.
func SummaryToTableData(sum gallery.Summary) Data {
	names := make([]string, 0, len(sum.Collections))
	for name := range sum.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		c := sum.Collections[name]
		rows = append(rows, []string{name, strconv.Itoa(c.Entries), strconv.Itoa(c.Rejected)})
	}

	return Data{
		Headers:         []string{"Collection", "Entries", "Rejected"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

// Tasks joins task kinds for a table cell, "-" when there are none.
func Tasks(ts catalogs.Tasks) string {
	if len(ts) == 0 {
		return "-"
	}
	return strings.Join(ts.Strings(), ", ")
}

// YesNo renders a boolean cell.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Truncate shortens s to at most width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return fmt.Sprintf("%s...", string(r[:width-3]))
}
