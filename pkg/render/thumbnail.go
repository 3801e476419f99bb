package render

import (
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

// PlacementAuto lets the popover choose the side with the most room.
const PlacementAuto = "auto"

// ThumbnailFunc resolves the thumbnail for an entry. A false result
// means no thumbnail exists.
type ThumbnailFunc func(entry *catalogs.Entry) (catalogs.ImageRef, bool)

// LinkFunc returns the navigation target for an entry.
type LinkFunc func(entry *catalogs.Entry) string

// Config is the per-collection rendering configuration. It is chosen
// once and applied uniformly to every entry of a grid.
type Config struct {
	Thumbnail ThumbnailFunc
	Link      LinkFunc
	Popover   bool // metadata popover instead of a caption
	Card      bool
}

// ConfigFor returns the default configuration for a collection kind.
// Models and data sources show popovers; projects show captions. Every
// kind renders as cards linking to its detail page under basePath.
func ConfigFor(kind catalogs.Kind, thumbs catalogs.Thumbnails, basePath string) Config {
	return Config{
		Thumbnail: FromThumbnails(thumbs),
		Link:      DetailLink(kind, basePath),
		Popover:   kind != catalogs.KindProject,
		Card:      true,
	}
}

// FromThumbnails adapts a thumbnail mapping to a ThumbnailFunc.
func FromThumbnails(thumbs catalogs.Thumbnails) ThumbnailFunc {
	return func(entry *catalogs.Entry) (catalogs.ImageRef, bool) {
		return thumbs.Lookup(entry.Name)
	}
}

// DetailLink returns a LinkFunc pointing at the kind's detail route.
func DetailLink(kind catalogs.Kind, basePath string) LinkFunc {
	return func(entry *catalogs.Entry) string {
		return basePath + kind.DetailPath(entry.Name)
	}
}

// Render produces the cell for one entry. It fails with a contract
// violation when the entry is nil, when the config has no link function,
// or when a popover is requested for an entry without tasks.
func Render(cfg Config, entry *catalogs.Entry) (Cell, error) {
	if entry == nil {
		return Cell{}, errors.NewContractError("render", "nil entry")
	}
	if cfg.Link == nil {
		return Cell{}, errors.NewContractError("render", "config has no link function")
	}

	visual := thumbnail(cfg.Thumbnail, entry)

	var body Node
	if cfg.Popover {
		if !entry.HasTasks() {
			return Cell{}, errors.NewContractError("render",
				"popover requested for entry "+entry.Name+" without tasks")
		}
		body = &Overlay{Popover: Describe(entry), Placement: PlacementAuto, Child: visual}
	} else {
		body = &Captioned{Child: visual, Caption: Caption(entry.Description)}
	}

	if cfg.Card {
		body = &Card{Child: body}
	}

	return Cell{Key: entry.Name, Href: cfg.Link(entry), Body: body}, nil
}

func thumbnail(lookup ThumbnailFunc, entry *catalogs.Entry) Node {
	if lookup != nil {
		if ref, ok := lookup(entry); ok && ref != "" {
			return &Image{Src: ref, Alt: entry.Name}
		}
	}
	return NewPlaceholder(entry.Name)
}
