package schema

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/goccy/go-yaml"
)

// member is one key of an ordered JSON object.
type member struct {
	key   string
	value any
}

// object is a JSON object whose keys keep insertion order, so exported
// documents list properties the way authors declared them.
type object []member

func (o object) set(key string, value any) object {
	return append(o, member{key: key, value: value})
}

// MarshalJSON implements json.Marshaler.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (o object) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(o))
	for _, m := range o {
		v := m.value
		if nested, ok := v.(object); ok {
			nv, err := nested.MarshalYAML()
			if err != nil {
				return nil, err
			}
			v = nv
		}
		out = append(out, yaml.MapItem{Key: m.key, Value: v})
	}
	return out, nil
}

// document builds the JSON Schema representation of s.
func (s *Schema) document() object {
	props := make(object, 0, len(s.Properties))
	for _, p := range s.Properties {
		props = props.set(p.Name, p.document())
	}

	defNames := make([]string, 0, len(s.Definitions))
	for name := range s.Definitions {
		defNames = append(defNames, name)
	}
	sort.Strings(defNames)
	defs := make(object, 0, len(defNames))
	for _, name := range defNames {
		d := s.Definitions[name]
		doc := object{}.set("title", d.Title)
		if d.Description != "" {
			doc = doc.set("description", d.Description)
		}
		doc = doc.set("enum", d.Enum).set("type", d.Type)
		defs = defs.set(name, doc)
	}

	doc := object{}.
		set("title", s.Title).
		set("type", s.Type).
		set("properties", props).
		set("required", s.Required).
		set("additionalProperties", s.AdditionalProperties)
	if len(defs) > 0 {
		doc = doc.set("definitions", defs)
	}
	return doc
}

func (p Property) document() object {
	doc := object{}.set("title", p.Title)
	if p.Description != "" {
		doc = doc.set("description", p.Description)
	}
	if p.Default != nil {
		doc = doc.set("default", p.Default)
	}
	if p.MinLength > 0 {
		doc = doc.set("minLength", p.MinLength)
	}
	if p.MaxLength > 0 {
		doc = doc.set("maxLength", p.MaxLength)
	}
	if p.Format != "" {
		doc = doc.set("format", p.Format)
	}
	doc = doc.set("type", p.Type)
	if p.Items != nil {
		if p.Items.Ref != "" {
			doc = doc.set("items", object{}.set("$ref", p.Items.Ref))
		} else {
			doc = doc.set("items", object{}.set("type", p.Items.Type))
		}
	}
	return doc
}

// MarshalJSON renders the schema as a JSON Schema document.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return s.document().MarshalJSON()
}

// MarshalYAML renders the schema as a YAML JSON Schema document.
func (s *Schema) MarshalYAML() (any, error) {
	return s.document().MarshalYAML()
}

// JSON returns the indented JSON document.
func (s *Schema) JSON() ([]byte, error) {
	raw, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// YAML returns the YAML document.
func (s *Schema) YAML() ([]byte, error) {
	return yaml.MarshalWithOptions(s, yaml.Indent(2), yaml.IndentSequence(true))
}
