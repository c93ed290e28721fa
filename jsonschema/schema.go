package jsonschema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Schema is a minimal JSON Schema representation used for canonical export
// and for importing already-serialized documents. Properties, required names,
// and definitions are kept as ordered slices, never maps: the emission order
// of a canonical document must match declaration order of its source, and Go
// map iteration would destroy it.
type Schema struct {
	// Core
	Type        string
	Description string
	Format      string
	Pattern     string
	Enum        []any

	// Object
	Properties []Property
	Required   []string

	// Array
	Items *Schema

	// AdditionalProperties is never set on a canonical document; provider
	// flavors that demand strict object schemas set it on derived copies.
	AdditionalProperties *bool

	// Constraints (passed through verbatim)
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	MinItems  *int
	MaxItems  *int

	// Default is emitted only when HasDefault is set, so that an explicit
	// null default stays representable.
	Default    any
	HasDefault bool

	// Indirection markers. Present only on imported documents; a canonical
	// document never carries either at any depth.
	Ref  string
	Defs []Property

	// AllOf appears on imported documents only (pydantic wraps referenced
	// fields in a single-element allOf). The importer merges it away; it is
	// never emitted.
	AllOf []*Schema

	// Title is emitted at the document root only.
	Title string
}

// Property pairs a name with a subschema, preserving declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// Object is an ordered generic JSON object, used for non-schema values
// (defaults, enum members) so that re-serialization keeps key order.
type Object []Member

// Member is one key/value entry of an Object.
type Member struct {
	Name  string
	Value any
}

// MarshalJSON renders the object with its keys in declaration order.
func (o Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeMember(&b, m.Name, m.Value); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Get returns the named member value.
func (o Object) Get(name string) (any, bool) {
	for _, m := range o {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the schema. Slice and pointer members are
// copied; leaf values (defaults, enum members) are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	if s.Properties != nil {
		out.Properties = make([]Property, len(s.Properties))
		for i, p := range s.Properties {
			out.Properties[i] = Property{Name: p.Name, Schema: p.Schema.Clone()}
		}
	}
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	out.Items = s.Items.Clone()
	if s.AdditionalProperties != nil {
		b := *s.AdditionalProperties
		out.AdditionalProperties = &b
	}
	if s.Defs != nil {
		out.Defs = make([]Property, len(s.Defs))
		for i, p := range s.Defs {
			out.Defs[i] = Property{Name: p.Name, Schema: p.Schema.Clone()}
		}
	}
	if s.AllOf != nil {
		out.AllOf = make([]*Schema, len(s.AllOf))
		for i, e := range s.AllOf {
			out.AllOf[i] = e.Clone()
		}
	}
	copyFloat := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	copyInt := func(p *int) *int {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	out.Minimum, out.Maximum = copyFloat(s.Minimum), copyFloat(s.Maximum)
	out.MinLength, out.MaxLength = copyInt(s.MinLength), copyInt(s.MaxLength)
	out.MinItems, out.MaxItems = copyInt(s.MinItems), copyInt(s.MaxItems)
	return &out
}

// MarshalJSON emits the schema with a fixed key order: type, description,
// format, pattern, enum, properties, required, items, numeric/length bounds,
// default, $ref, $defs, title. Title goes last so that the document root
// reads type-first the way prompt consumers expect.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	w := memberWriter{b: &b}
	if s.Type != "" {
		w.put("type", s.Type)
	}
	if s.Description != "" {
		w.put("description", s.Description)
	}
	if s.Format != "" {
		w.put("format", s.Format)
	}
	if s.Pattern != "" {
		w.put("pattern", s.Pattern)
	}
	if s.Enum != nil {
		w.put("enum", s.Enum)
	}
	if s.Properties != nil {
		w.putProps("properties", s.Properties)
	}
	if s.Required != nil {
		w.put("required", s.Required)
	}
	if s.Items != nil {
		w.put("items", s.Items)
	}
	if s.AdditionalProperties != nil {
		w.put("additionalProperties", *s.AdditionalProperties)
	}
	if s.Minimum != nil {
		w.put("minimum", *s.Minimum)
	}
	if s.Maximum != nil {
		w.put("maximum", *s.Maximum)
	}
	if s.MinLength != nil {
		w.put("minLength", *s.MinLength)
	}
	if s.MaxLength != nil {
		w.put("maxLength", *s.MaxLength)
	}
	if s.MinItems != nil {
		w.put("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		w.put("maxItems", *s.MaxItems)
	}
	if s.HasDefault {
		w.put("default", s.Default)
	}
	if s.Ref != "" {
		w.put("$ref", s.Ref)
	}
	if s.Defs != nil {
		w.putProps("$defs", s.Defs)
	}
	if s.Title != "" {
		w.put("title", s.Title)
	}
	if w.err != nil {
		return nil, w.err
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

type memberWriter struct {
	b   *bytes.Buffer
	n   int
	err error
}

func (w *memberWriter) put(name string, v any) {
	if w.err != nil {
		return
	}
	if w.n > 0 {
		w.b.WriteByte(',')
	}
	w.n++
	w.err = writeMember(w.b, name, v)
}

func (w *memberWriter) putProps(name string, props []Property) {
	if w.err != nil {
		return
	}
	if w.n > 0 {
		w.b.WriteByte(',')
	}
	w.n++
	key, err := json.Marshal(name)
	if err != nil {
		w.err = err
		return
	}
	w.b.Write(key)
	w.b.WriteString(":{")
	for i, p := range props {
		if i > 0 {
			w.b.WriteByte(',')
		}
		if err := writeMember(w.b, p.Name, p.Schema); err != nil {
			w.err = err
			return
		}
	}
	w.b.WriteByte('}')
}

func writeMember(b *bytes.Buffer, name string, v any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Write(key)
	b.WriteByte(':')
	b.Write(val)
	return nil
}
