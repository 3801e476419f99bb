package gallery

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/gallery/internal/loader"
	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/render"
)

// Snapshot is an immutable view of every loaded collection.
type Snapshot struct {
	collections map[catalogs.Kind]*catalogs.Collection
	thumbnails  map[catalogs.Kind]catalogs.Thumbnails
	rejected    map[catalogs.Kind][]loader.Rejected
	sources     map[catalogs.Kind]string
	loadedAt    utc.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		collections: map[catalogs.Kind]*catalogs.Collection{},
		thumbnails:  map[catalogs.Kind]catalogs.Thumbnails{},
		rejected:    map[catalogs.Kind][]loader.Rejected{},
		sources:     map[catalogs.Kind]string{},
	}
}

// Kinds returns the kinds that have a collection file, in canonical order.
func (s *Snapshot) Kinds() []catalogs.Kind {
	var kinds []catalogs.Kind
	for _, k := range catalogs.AllKinds() {
		if _, ok := s.collections[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Has reports whether a collection of kind was loaded.
func (s *Snapshot) Has(kind catalogs.Kind) bool {
	_, ok := s.collections[kind]
	return ok
}

// Collection returns the accepted entries of kind. A kind without a data
// file yields an empty collection.
func (s *Snapshot) Collection(kind catalogs.Kind) *catalogs.Collection {
	if c, ok := s.collections[kind]; ok {
		return c
	}
	return catalogs.NewCollection(kind, nil)
}

// Thumbnails returns the thumbnail lookup for kind.
func (s *Snapshot) Thumbnails(kind catalogs.Kind) catalogs.Thumbnails {
	return s.thumbnails[kind]
}

// Rejected returns the records of kind that failed validation.
func (s *Snapshot) Rejected(kind catalogs.Kind) []loader.Rejected {
	return s.rejected[kind]
}

// Source returns the file the collection of kind was read from.
func (s *Snapshot) Source(kind catalogs.Kind) string {
	return s.sources[kind]
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() utc.Time {
	return s.loadedAt
}

// Layout composes the grid for kind with its default render config.
// Links are prefixed with basePath.
func (s *Snapshot) Layout(kind catalogs.Kind, basePath string) (*render.Layout, error) {
	return render.ComposeCollection(s.Collection(kind), s.Thumbnails(kind), basePath)
}

// CollectionSummary counts the records of one collection.
type CollectionSummary struct {
	Entries  int `json:"entries" yaml:"entries"`
	Rejected int `json:"rejected" yaml:"rejected"`
}

// Summary reports record counts per loaded collection.
type Summary struct {
	Collections map[string]CollectionSummary `json:"collections" yaml:"collections"`
	LoadedAt    utc.Time                    `json:"loaded_at" yaml:"loaded_at"`
}

// Summary counts accepted and rejected records, keyed by collection name.
func (s *Snapshot) Summary() Summary {
	sum := Summary{Collections: map[string]CollectionSummary{}, LoadedAt: s.loadedAt}
	for _, k := range s.Kinds() {
		sum.Collections[k.Plural()] = CollectionSummary{
			Entries:  s.Collection(k).Len(),
			Rejected: len(s.Rejected(k)),
		}
	}
	return sum
}
