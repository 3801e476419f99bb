// Package catalogs defines the gallery's catalog data model: entries
// describing models, data sources and projects, the closed set of task
// kinds they declare, and the collections and thumbnail lookups the
// rendering pipeline consumes. Values in this package are built once at
// load time and are never mutated afterwards.
package catalogs

// Entry is one validated catalog record.
type Entry struct {
	Name            string   `json:"name" yaml:"name"`                                             // Unique within its collection; display label and render key
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`           // Free text
	Tasks           Tasks    `json:"tasks" yaml:"tasks"`                                           // Ordered for display, semantically a set
	URL             string   `json:"url" yaml:"url"`                                               // Absolute resource locator
	PkgURL          string   `json:"pkg_url" yaml:"pkg_url"`                                       // Installable package or archive reference
	Format          string   `json:"format" yaml:"format"`                                         // Input data type consumed
	Pretrained      bool     `json:"pretrained" yaml:"pretrained"`                                 // Defaults to true
	LabelsRequired  bool     `json:"labels_required" yaml:"labels_required"`                       // Defaults to true
	Institution     []string `json:"institution" yaml:"institution"`                               // Defaults to empty
	Tags            []string `json:"tags" yaml:"tags"`                                             // Required, may be empty
	ScivisionUsable *bool    `json:"scivision_usable,omitempty" yaml:"scivision_usable,omitempty"` // Optional usage indicator
}

// Usable reports the usage indicator, treating an absent value as false.
func (e *Entry) Usable() bool {
	return e.ScivisionUsable != nil && *e.ScivisionUsable
}

// HasTasks reports whether the entry carries a task list at all. Entries
// produced by validation always do, even when the list is empty.
func (e *Entry) HasTasks() bool {
	return e.Tasks != nil
}
