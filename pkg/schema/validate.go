package schema

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/agentstation/gallery/pkg/catalogs"
	"github.com/agentstation/gallery/pkg/errors"
)

// RootField names the record itself in errors about its overall shape.
const RootField = "$"

// Validate checks a raw record against the entry contract. It returns
// either a fully typed entry or a non-empty list of every problem found.
func Validate(raw any) (*catalogs.Entry, errors.ValidationErrors) {
	return entrySchema.Validate(raw)
}

// Validate checks raw against s. Records decoded from JSON or YAML into
// map[string]any are accepted; anything else is a TypeMismatch on the root.
func (s *Schema) Validate(raw any) (*catalogs.Entry, errors.ValidationErrors) {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ValidationErrors{
			errors.NewFieldError(RootField, errors.TypeMismatch, "expected object, got "+typeName(raw), nil),
		}
	}

	errs := s.check(record)
	if len(errs) > 0 {
		return nil, errs
	}
	return buildEntry(s.withDefaults(record)), nil
}

// check collects every violation in a stable order: unknown fields,
// missing required fields, then per-property problems in declared order.
func (s *Schema) check(record map[string]any) errors.ValidationErrors {
	var errs errors.ValidationErrors

	if !s.AdditionalProperties {
		keys := make([]string, 0, len(record))
		for k := range record {
			if _, declared := s.Property(k); !declared {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			errs = append(errs, errors.NewFieldError(k, errors.UnknownField, "property is not declared by the schema", nil))
		}
	}

	for _, name := range s.Required {
		if _, ok := record[name]; !ok {
			errs = append(errs, errors.NewFieldError(name, errors.MissingField, "required property is absent", nil))
		}
	}

	for _, p := range s.Properties {
		value, ok := record[p.Name]
		if !ok {
			continue
		}
		errs = append(errs, s.checkProperty(p, value)...)
	}

	return errs
}

func (s *Schema) checkProperty(p Property, value any) errors.ValidationErrors {
	switch p.Type {
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return errors.ValidationErrors{mismatch(p.Name, TypeString, value)}
		}
		return checkString(p, str)
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return errors.ValidationErrors{mismatch(p.Name, TypeBoolean, value)}
		}
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			return errors.ValidationErrors{mismatch(p.Name, TypeArray, value)}
		}
		return s.checkItems(p, items)
	}
	return nil
}

func checkString(p Property, s string) errors.ValidationErrors {
	var errs errors.ValidationErrors
	n := utf8.RuneCountInString(s)
	if p.MinLength > 0 && n < p.MinLength {
		errs = append(errs, errors.NewFieldError(p.Name, errors.InvalidValue,
			fmt.Sprintf("length %d is below the minimum of %d", n, p.MinLength), nil))
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		errs = append(errs, errors.NewFieldError(p.Name, errors.InvalidValue,
			fmt.Sprintf("length %d exceeds the maximum of %d", n, p.MaxLength), nil))
	}
	if p.Format == FormatURI && n > 0 && !isAbsoluteURI(s) {
		errs = append(errs, errors.NewFieldError(p.Name, errors.InvalidValue, "expected an absolute URI", s))
	}
	return errs
}

func (s *Schema) checkItems(p Property, items []any) errors.ValidationErrors {
	if p.Items == nil {
		return nil
	}

	var def *Definition
	if p.Items.Ref != "" {
		d, ok := s.resolve(p.Items.Ref)
		if !ok {
			return errors.ValidationErrors{errors.NewFieldError(p.Name, errors.InvalidValue,
				"schema reference "+p.Items.Ref+" cannot be resolved", nil)}
		}
		def = &d
	}

	var errs errors.ValidationErrors
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", p.Name, i)
		want := p.Items.Type
		if def != nil {
			want = def.Type
		}
		str, ok := item.(string)
		if want == TypeString && !ok {
			errs = append(errs, mismatch(field, want, item))
			continue
		}
		if def != nil && len(def.Enum) > 0 && !slices.Contains(def.Enum, str) {
			errs = append(errs, errors.NewFieldError(field, errors.InvalidEnumValue,
				fmt.Sprintf("%q is not one of %v", str, def.Enum), str))
		}
	}
	return errs
}

// withDefaults returns a copy of record with declared defaults filled in.
func (s *Schema) withDefaults(record map[string]any) map[string]any {
	out := make(map[string]any, len(s.Properties))
	for k, v := range record {
		out[k] = v
	}
	for _, p := range s.Properties {
		if _, ok := out[p.Name]; ok || p.Default == nil {
			continue
		}
		if list, isList := p.Default.([]any); isList {
			out[p.Name] = slices.Clone(list)
			continue
		}
		out[p.Name] = p.Default
	}
	return out
}

// buildEntry converts a checked record into an Entry. Only called after
// check reported no errors, so every assertion below holds.
func buildEntry(record map[string]any) *catalogs.Entry {
	e := &catalogs.Entry{
		Name:           stringValue(record["name"]),
		Description:    stringValue(record["description"]),
		URL:            stringValue(record["url"]),
		PkgURL:         stringValue(record["pkg_url"]),
		Format:         stringValue(record["format"]),
		Pretrained:     boolValue(record["pretrained"]),
		LabelsRequired: boolValue(record["labels_required"]),
		Institution:    stringList(record["institution"]),
		Tags:           stringList(record["tags"]),
	}

	raw := stringList(record["tasks"])
	kinds := make([]catalogs.TaskKind, len(raw))
	for i, t := range raw {
		kinds[i] = catalogs.TaskKind(t)
	}
	e.Tasks = catalogs.NewTasks(kinds...)

	if v, ok := record["scivision_usable"].(bool); ok {
		e.ScivisionUsable = &v
	}
	return e
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringValue(item))
	}
	return out
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && (u.Host != "" || u.Opaque != "")
}

func mismatch(field string, want Type, got any) *errors.FieldError {
	return errors.NewFieldError(field, errors.TypeMismatch,
		fmt.Sprintf("expected %s, got %s", want, typeName(got)), got)
}

// typeName reports the JSON type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case float64, float32, int, int64, uint64, int32, uint32, uint:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
