// Package render turns catalog entries into grids of visual cells.
//
// The pipeline is pure and synchronous. A Config chosen once per
// collection drives Render, which resolves or synthesizes a thumbnail,
// attaches either a metadata popover or a caption, optionally wraps the
// result in a card, and always wraps it in a link keyed by the entry name.
// Compose maps an ordered slice of entries through Render into a Layout
// without sorting, filtering or paginating. WriteLayout and WritePage
// serialize the result as Bootstrap compatible HTML.
//
// Entries and thumbnail lookups are only read, so one Config may serve
// concurrent renders.
package render
