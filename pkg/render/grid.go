package render

import (
	"fmt"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
)

// Columns is the number of grid columns per viewport breakpoint.
type Columns struct {
	Default    int
	Medium     int
	Large      int
	ExtraLarge int
}

// DefaultColumns returns the responsive column counts: one column on
// small viewports up to four on extra-large ones.
func DefaultColumns() Columns {
	return Columns{
		Default:    constants.ColumnsDefault,
		Medium:     constants.ColumnsMedium,
		Large:      constants.ColumnsLarge,
		ExtraLarge: constants.ColumnsExtraLarge,
	}
}

// Layout is a responsive grid of cells.
type Layout struct {
	Columns Columns
	Cells   []Cell
}

// Keys returns the cell keys in grid order.
func (l *Layout) Keys() []string {
	keys := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		keys[i] = c.Key
	}
	return keys
}

// Compose renders every entry with the same config and arranges the
// cells in input order. An empty input yields an empty grid. The only
// failure is a contract violation from Render, reported with the index
// of the offending entry.
func Compose(cfg Config, entries []*catalogs.Entry) (*Layout, error) {
	layout := &Layout{
		Columns: DefaultColumns(),
		Cells:   make([]Cell, 0, len(entries)),
	}
	for i, entry := range entries {
		cell, err := Render(cfg, entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		layout.Cells = append(layout.Cells, cell)
	}
	return layout, nil
}

// ComposeCollection renders a collection with its kind's default config.
func ComposeCollection(c *catalogs.Collection, thumbs catalogs.Thumbnails, basePath string) (*Layout, error) {
	return Compose(ConfigFor(c.Kind(), thumbs, basePath), c.Entries())
}
