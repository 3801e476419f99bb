package render

import "github.com/agentstation/gallery/pkg/catalogs"

// Node is one element of a rendered cell.
type Node interface {
	node()
}

// Image is a resolved thumbnail.
type Image struct {
	Src catalogs.ImageRef
	Alt string
}

// Overlay attaches an interactive metadata popover to its child.
type Overlay struct {
	Popover   Popover
	Placement string
	Child     Node
}

// Captioned places a caption beneath its child.
type Captioned struct {
	Child   Node
	Caption string
}

// Card wraps its child in a card container.
type Card struct {
	Child Node
}

func (*Image) node()       {}
func (*Placeholder) node() {}
func (*Overlay) node()     {}
func (*Captioned) node()   {}
func (*Card) node()        {}

// Cell is a rendered entry: a navigable link around the visual body.
// Key is the stable identity used for list reconciliation.
type Cell struct {
	Key  string
	Href string
	Body Node
}
