// Package schema holds the authoring contract for catalog entries and the
// validator that gates what data the rendering pipeline may consume.
//
// The contract is a declarative document (a JSON Schema subset) that can be
// exported for external contribution checkers; Validate walks the same
// document, so the published contract and the enforced one never drift.
package schema

import (
	"strings"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/constants"
)

// Type is a JSON value type named by the schema.
type Type string

// Schema value types.
const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// FormatURI requires a string to be an absolute URI.
const FormatURI = "uri"

// TaskEnumRef is the reference used by the tasks property.
const TaskEnumRef = "#/definitions/TaskEnum"

// Items describes the elements of an array property. Exactly one of Type
// or Ref is set.
type Items struct {
	Type Type
	Ref  string
}

// Property describes one declared field of a record.
type Property struct {
	Name        string
	Title       string
	Description string
	Type        Type
	Default     any
	MinLength   int // zero means unconstrained
	MaxLength   int // zero means unconstrained
	Format      string
	Items       *Items
}

// Definition is a named, reusable value constraint.
type Definition struct {
	Title       string
	Description string
	Enum        []string
	Type        Type
}

// Schema is a closed record contract.
type Schema struct {
	Title                string
	Type                 Type
	Properties           []Property
	Required             []string
	AdditionalProperties bool
	Definitions          map[string]Definition
}

// Property returns the declared property with the given name.
func (s *Schema) Property(name string) (Property, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// IsRequired reports whether name is in the required set.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// resolve returns the definition a $ref points at.
func (s *Schema) resolve(ref string) (Definition, bool) {
	name, ok := strings.CutPrefix(ref, "#/definitions/")
	if !ok {
		return Definition{}, false
	}
	def, ok := s.Definitions[name]
	return def, ok
}

// entrySchema is the shared, never mutated instance used by Validate.
var entrySchema = newEntrySchema()

// Entry returns the catalog entry contract. Each call returns a fresh copy
// that the caller may modify.
func Entry() *Schema {
	return newEntrySchema()
}

func newEntrySchema() *Schema {
	tasks := make([]string, 0, len(catalogs.AllTaskKinds()))
	for _, t := range catalogs.AllTaskKinds() {
		tasks = append(tasks, t.String())
	}

	return &Schema{
		Title: "A model catalog entry",
		Type:  TypeObject,
		Properties: []Property{
			{
				Name:        "name",
				Title:       "Name",
				Description: "Short, unique name for the model (one or two words, under 20 characters recommended)",
				Type:        TypeString,
			},
			{
				Name:        "description",
				Title:       "Description",
				Description: "Detailed description of the model",
				Type:        TypeString,
			},
			{
				Name:        "tasks",
				Title:       "Tasks",
				Description: "Which task (or tasks) does the model perform?",
				Type:        TypeArray,
				Default:     []any{},
				Items:       &Items{Ref: TaskEnumRef},
			},
			{
				Name:        "url",
				Title:       "URL",
				Description: "The URL of the model. This should point to scivision model yaml file.",
				Type:        TypeString,
				MinLength:   constants.MinURLLength,
				MaxLength:   constants.MaxURLLength,
				Format:      FormatURI,
			},
			{
				Name:        "pkg_url",
				Title:       "Python package",
				Description: "A pip requirement specifier for PyPI, or a URL of the archive or package (on GitHub, for example)",
				Type:        TypeString,
			},
			{
				Name:        "format",
				Title:       "Model input format",
				Description: "The type of data consumed by the model",
				Type:        TypeString,
			},
			{
				Name:    "pretrained",
				Title:   "Pretrained model?",
				Type:    TypeBoolean,
				Default: true,
			},
			{
				Name:        "labels_required",
				Title:       "Labels required?",
				Description: "Does the model require labeled data for training?",
				Type:        TypeBoolean,
				Default:     true,
			},
			{
				Name:        "institution",
				Title:       "Institution(s)",
				Description: "A list of institutions that produced or are associated with the model (one per item)",
				Type:        TypeArray,
				Default:     []any{},
				Items:       &Items{Type: TypeString},
			},
			{
				Name:  "tags",
				Title: "Tags",
				Type:  TypeArray,
				Items: &Items{Type: TypeString},
			},
			{
				Name:        "scivision_usable",
				Title:       "Usable with scivision?",
				Description: "Can the resource be loaded directly with the scivision package?",
				Type:        TypeBoolean,
			},
		},
		Required:             []string{"name", "url", "pkg_url", "format", "tags"},
		AdditionalProperties: false,
		Definitions: map[string]Definition{
			"TaskEnum": {
				Title:       "TaskEnum",
				Description: "An enumeration.",
				Enum:        tasks,
				Type:        TypeString,
			},
		},
	}
}
