package adapt

import (
	json "github.com/goccy/go-json"

	toolform "github.com/toolform/toolform"
	js "github.com/toolform/toolform/jsonschema"
)

// JSONDocument builds a schema tree from an already-serialized schema
// document. The document may carry $defs/$ref indirection (resolved later by
// toolform.Inline) and may be wrapped in a common tool envelope — OpenAI
// function ({"type":"function","function":{…,"parameters":…}}), response
// format ({"json_schema":{"schema":…}}), Anthropic ({"input_schema":…}), or
// plain {"parameters":…} — which is unwrapped first. Constraints (pattern,
// bounds, enum, format) are copied through unchanged.
func JSONDocument(data []byte, opts ...Option) (*toolform.SchemaNode, error) {
	o := applyOptions(opts)
	name, desc, inner, err := unwrapEnvelope(data)
	if err != nil {
		return nil, &toolform.BuildError{Msg: "adapt: invalid schema document", Cause: err}
	}
	doc, err := js.Decode(inner)
	if err != nil {
		return nil, &toolform.BuildError{Msg: "adapt: invalid schema document", Cause: err}
	}
	return fromSchema(doc, name, desc, o)
}

// FromSchema builds a schema tree from a decoded document.
func FromSchema(doc *js.Schema, opts ...Option) (*toolform.SchemaNode, error) {
	return fromSchema(doc, "", "", applyOptions(opts))
}

func fromSchema(doc *js.Schema, name, desc string, o Options) (*toolform.SchemaNode, error) {
	root, err := nodeFromSchema(doc)
	if err != nil {
		return nil, err
	}
	if root.Name == "" {
		root.Name = name
	}
	if root.Description == "" {
		root.Description = desc
	}
	if o.Name != "" {
		root.Name = o.Name
	}
	if o.Description != "" {
		root.Description = o.Description
	}
	return root, nil
}

// envelope is the set of wrapper keys tool-schema dialects put around the
// actual parameter schema.
type envelope struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Function    json.RawMessage `json:"function"`
	JSONSchema  json.RawMessage `json:"json_schema"`
	Schema      json.RawMessage `json:"schema"`
	Parameters  json.RawMessage `json:"parameters"`
	InputSchema json.RawMessage `json:"input_schema"`
}

func unwrapEnvelope(data []byte) (name, desc string, inner []byte, err error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", "", nil, err
	}
	wrapped := env.Function
	if wrapped == nil {
		wrapped = env.JSONSchema
	}
	if wrapped != nil {
		n, d, inner, err := unwrapEnvelope(wrapped)
		if err != nil {
			return "", "", nil, err
		}
		if n == "" {
			n = env.Name
		}
		if d == "" {
			d = env.Description
		}
		return n, d, inner, nil
	}
	inner = env.Parameters
	if inner == nil {
		inner = env.InputSchema
	}
	if inner == nil {
		inner = env.Schema
	}
	if inner == nil {
		// not wrapped: the document itself is the schema
		return "", "", data, nil
	}
	return env.Name, env.Description, inner, nil
}

func nodeFromSchema(s *js.Schema) (*toolform.SchemaNode, error) {
	if s == nil {
		return &toolform.SchemaNode{Kind: toolform.KindAny}, nil
	}
	if len(s.AllOf) > 0 {
		merged, err := mergeAllOf(s)
		if err != nil {
			return nil, err
		}
		return nodeFromSchema(merged)
	}
	n := &toolform.SchemaNode{
		Name:        s.Title,
		Description: s.Description,
		Constraints: toolform.Constraints{
			Pattern:   s.Pattern,
			Format:    s.Format,
			Minimum:   s.Minimum,
			Maximum:   s.Maximum,
			MinLength: s.MinLength,
			MaxLength: s.MaxLength,
			MinItems:  s.MinItems,
			MaxItems:  s.MaxItems,
		},
	}
	if s.HasDefault {
		n.Default, n.HasDefault = s.Default, true
	}
	for _, d := range s.Defs {
		dn, err := nodeFromSchema(d.Schema)
		if err != nil {
			return nil, err
		}
		n.Defs = append(n.Defs, toolform.Def{Name: d.Name, Node: dn})
	}
	if s.Ref != "" {
		// metadata alongside the $ref stays on the node; Inline lets the
		// reference site win when it merges the resolved definition in
		n.Kind = toolform.KindRef
		n.Ref = refName(s.Ref)
		return n, nil
	}

	switch {
	case s.Type == "object" || (s.Type == "" && s.Properties != nil):
		n.Kind = toolform.KindObject
		required := make(map[string]bool, len(s.Required))
		for _, r := range s.Required {
			required[r] = true
		}
		n.Fields = make([]toolform.Field, 0, len(s.Properties))
		for _, p := range s.Properties {
			child, err := nodeFromSchema(p.Schema)
			if err != nil {
				return nil, err
			}
			n.Fields = append(n.Fields, toolform.Field{
				Name:     p.Name,
				Node:     child,
				Required: required[p.Name],
			})
		}
	case s.Type == "array" || (s.Type == "" && s.Items != nil):
		n.Kind = toolform.KindArray
		if s.Items != nil && !emptySchema(s.Items) {
			item, err := nodeFromSchema(s.Items)
			if err != nil {
				return nil, err
			}
			n.Item = item
		}
	case s.Enum != nil && s.Type == "":
		n.Kind = toolform.KindEnum
		n.Enum = s.Enum
	case s.Type == "string", s.Type == "integer", s.Type == "number", s.Type == "boolean":
		n.Kind = toolform.KindPrimitive
		n.Primitive = s.Type
		n.Enum = s.Enum
	case s.Type == "":
		n.Kind = toolform.KindAny
	default:
		return nil, toolform.NewBuildError("adapt: unsupported schema type %q", s.Type)
	}
	return n, nil
}

// mergeAllOf collapses a single-element allOf wrapper into the enclosing
// schema, sibling keys winning over the wrapped element (pydantic wraps a
// referenced field this way to attach a description or default alongside the
// $ref). A multi-element allOf is a genuine intersection the canonical
// dialect cannot express.
func mergeAllOf(s *js.Schema) (*js.Schema, error) {
	if len(s.AllOf) > 1 {
		return nil, toolform.NewBuildError("adapt: allOf with %d elements is not representable", len(s.AllOf))
	}
	out := s.AllOf[0].Clone()
	if s.Type != "" {
		out.Type = s.Type
	}
	if s.Description != "" {
		out.Description = s.Description
	}
	if s.Format != "" {
		out.Format = s.Format
	}
	if s.Pattern != "" {
		out.Pattern = s.Pattern
	}
	if s.Enum != nil {
		out.Enum = s.Enum
	}
	if s.Properties != nil {
		out.Properties = s.Properties
	}
	if s.Required != nil {
		out.Required = s.Required
	}
	if s.Items != nil {
		out.Items = s.Items
	}
	if s.Minimum != nil {
		out.Minimum = s.Minimum
	}
	if s.Maximum != nil {
		out.Maximum = s.Maximum
	}
	if s.MinLength != nil {
		out.MinLength = s.MinLength
	}
	if s.MaxLength != nil {
		out.MaxLength = s.MaxLength
	}
	if s.MinItems != nil {
		out.MinItems = s.MinItems
	}
	if s.MaxItems != nil {
		out.MaxItems = s.MaxItems
	}
	if s.HasDefault {
		out.Default, out.HasDefault = s.Default, true
	}
	if s.Ref != "" {
		out.Ref = s.Ref
	}
	if s.Title != "" {
		out.Title = s.Title
	}
	out.Defs = append(out.Defs, s.Defs...)
	return out, nil
}

// refName strips the local definition prefix from a $ref target.
func refName(ref string) string {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
			return ref[len(prefix):]
		}
	}
	return ref
}

func emptySchema(s *js.Schema) bool {
	return s.Type == "" && s.Description == "" && s.Format == "" && s.Pattern == "" &&
		s.Enum == nil && s.Properties == nil && s.Required == nil && s.Items == nil &&
		s.Ref == "" && s.Defs == nil && s.AllOf == nil && !s.HasDefault && s.Title == "" &&
		s.Minimum == nil && s.Maximum == nil &&
		s.MinLength == nil && s.MaxLength == nil &&
		s.MinItems == nil && s.MaxItems == nil
}
