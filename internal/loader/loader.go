// Package loader reads catalog collections from a data directory,
// validates every raw record against the entry schema and reports the
// records it had to reject. Validation happens here, once, so everything
// downstream only ever sees well-formed entries.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
	"github.com/agentstation/gallery/pkg/logging"
	"github.com/agentstation/gallery/pkg/schema"
)

// Format is a supported collection file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// extensions lists the file suffixes probed per collection, in order.
var extensions = []struct {
	ext    string
	format Format
}{
	{".json", FormatJSON},
	{".yaml", FormatYAML},
	{".yml", FormatYAML},
}

// FormatFromPath infers the encoding from a file name.
func FormatFromPath(name string) (Format, error) {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range extensions {
		if e.ext == ext {
			return e.format, nil
		}
	}
	return "", fmt.Errorf("unsupported collection file extension %q", ext)
}

// Rejected is a raw record that did not make it into the collection.
type Rejected struct {
	Index  int                     `json:"index" yaml:"index"`
	Name   string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Errors errors.ValidationErrors `json:"errors" yaml:"errors"`
}

// Result is the outcome of loading one collection.
type Result struct {
	Source     string               `json:"source" yaml:"source"`
	Collection *catalogs.Collection `json:"-" yaml:"-"`
	Rejected   []Rejected           `json:"rejected" yaml:"rejected"`
}

// OK reports whether every record was accepted.
func (r *Result) OK() bool {
	return len(r.Rejected) == 0
}

// Loader loads collections from a filesystem.
type Loader struct {
	fsys fs.FS
	dir  string
}

// New creates a loader reading collection files from dir within fsys.
func New(fsys fs.FS, dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{fsys: fsys, dir: dir}
}

// Locate returns the path of the collection file for kind.
func (l *Loader) Locate(kind catalogs.Kind) (string, Format, error) {
	for _, e := range extensions {
		p := path.Join(l.dir, kind.Plural()+e.ext)
		if _, err := fs.Stat(l.fsys, p); err == nil {
			return p, e.format, nil
		}
	}
	return "", "", errors.NewNotFoundError("collection file", path.Join(l.dir, kind.Plural()+".{json,yaml,yml}"))
}

// Load reads and validates the collection of the given kind.
func (l *Loader) Load(ctx context.Context, kind catalogs.Kind) (*Result, error) {
	p, format, err := l.Locate(kind)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, errors.WrapIO("read", p, err)
	}

	result, err := Parse(logging.WithCollection(ctx, kind.String()), kind, data, format)
	if err != nil {
		var perr *errors.ParseError
		if errors.As(err, &perr) {
			perr.File = p
		}
		return nil, err
	}
	result.Source = p
	return result, nil
}

// LoadAll loads every collection kind that has a file. Missing files are
// skipped; any other failure aborts.
func (l *Loader) LoadAll(ctx context.Context) (map[catalogs.Kind]*Result, error) {
	results := make(map[catalogs.Kind]*Result, len(catalogs.AllKinds()))
	for _, kind := range catalogs.AllKinds() {
		result, err := l.Load(ctx, kind)
		if errors.IsNotFound(err) {
			logging.FromContext(ctx).Debug().Str("collection", kind.String()).Msg("No collection file, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", kind.Plural(), err)
		}
		results[kind] = result
	}
	return results, nil
}

// DecodeRecord parses a single raw record without validating it.
func DecodeRecord(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapParse(string(format), "", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapParse(string(format), "", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return doc, nil
}

// Decode parses a collection document into raw records. Both an object
// with an "entries" array and a bare array are accepted.
func Decode(data []byte, format Format) ([]any, error) {
	doc, err := DecodeRecord(data, format)
	if err != nil {
		return nil, err
	}

	switch v := doc.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return v, nil
	case map[string]any:
		entries, ok := v["entries"]
		if !ok {
			return nil, errors.NewParseError(string(format), "", `missing "entries" array`, nil)
		}
		if entries == nil {
			return []any{}, nil
		}
		list, ok := entries.([]any)
		if !ok {
			return nil, errors.NewParseError(string(format), "", `"entries" is not an array`, nil)
		}
		return list, nil
	default:
		return nil, errors.NewParseError(string(format), "", "collection must be an object or an array", nil)
	}
}

// Parse decodes and validates a collection document. Records failing
// validation, and records repeating an earlier accepted name, are
// rejected and logged; the rest form the collection in file order.
func Parse(ctx context.Context, kind catalogs.Kind, data []byte, format Format) (*Result, error) {
	raw, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	entries := make([]*catalogs.Entry, 0, len(raw))
	firstSeen := make(map[string]int, len(raw))
	result := &Result{Rejected: []Rejected{}}

	for i, record := range raw {
		entry, verrs := schema.Validate(record)
		if entry != nil {
			if first, dup := firstSeen[entry.Name]; dup {
				verrs = append(verrs, errors.NewFieldError("name", errors.InvalidValue,
					fmt.Sprintf("duplicate name, first used by entry %d", first), entry.Name))
			}
		}
		if len(verrs) > 0 {
			rejected := Rejected{Index: i, Name: recordName(record), Errors: verrs}
			result.Rejected = append(result.Rejected, rejected)
			logger.Warn().
				Str("collection", kind.String()).
				Int("index", i).
				Str("entry", rejected.Name).
				Strs("fields", verrs.Fields()).
				Err(verrs).
				Msg("Rejected catalog record")
			continue
		}
		firstSeen[entry.Name] = i
		entries = append(entries, entry)
	}

	result.Collection = catalogs.NewCollection(kind, entries)
	logger.Debug().
		Str("collection", kind.String()).
		Int("accepted", result.Collection.Len()).
		Int("rejected", len(result.Rejected)).
		Msg("Loaded collection")
	return result, nil
}

func recordName(record any) string {
	if m, ok := record.(map[string]any); ok {
		if name, ok := m["name"].(string); ok {
			return name
		}
	}
	return ""
}
