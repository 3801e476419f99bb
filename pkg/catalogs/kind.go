package catalogs

import (
	"fmt"
	"strings"

	"github.com/agentstation/gallery/pkg/errors"
)

// Kind identifies one of the independent catalog collections.
type Kind string

// Collection kinds.
const (
	KindModel      Kind = "model"
	KindDatasource Kind = "datasource"
	KindProject    Kind = "project"
)

// AllKinds returns every collection kind in navigation order.
func AllKinds() []Kind {
	return []Kind{KindModel, KindDatasource, KindProject}
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// Plural returns the collection name, e.g. "models".
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Title returns a human readable collection heading.
func (k Kind) Title() string {
	switch k {
	case KindModel:
		return "Models"
	case KindDatasource:
		return "Data sources"
	case KindProject:
		return "Projects"
	default:
		return string(k)
	}
}

// FileName returns the JSON data file holding this collection.
func (k Kind) FileName() string {
	return k.Plural() + ".json"
}

// GridPath returns the route of the collection's grid view.
func (k Kind) GridPath() string {
	return "/" + string(k) + "-grid"
}

// DetailPath returns the detail page target for an entry name. The name
// is percent-encoded as a single path segment.
func (k Kind) DetailPath(name string) string {
	return "/" + string(k) + "/" + EscapeName(name)
}

// ParseKind accepts singular, plural and hyphenated collection names. An
// unknown name yields an InvalidEnumValue *errors.FieldError on
// "collection", so callers can test it with errors.IsValidationError.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "model", "models":
		return KindModel, nil
	case "datasource", "datasources", "data-source", "data-sources":
		return KindDatasource, nil
	case "project", "projects":
		return KindProject, nil
	default:
		return "", errors.NewFieldError("collection", errors.InvalidEnumValue,
			fmt.Sprintf("unknown collection %q: must be one of models, datasources, projects", s), s)
	}
}

// EscapeName percent-encodes name as a single URL path segment. Letters,
// digits and -_.!~*'() are kept; every other byte, "/" and spaces
// included, is escaped as %XX.
func EscapeName(name string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if keepInName(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func keepInName(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
