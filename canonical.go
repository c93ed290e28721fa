package toolform

import (
	json "github.com/goccy/go-json"

	js "github.com/toolform/toolform/jsonschema"
)

// Serialize renders an inlined tree into the minimal, order-preserving
// output schema. It performs no semantic transformation beyond pruning and
// ordering: field types and requiredness pass through untouched, constraints
// verbatim. The tree must be indirection-free; run Inline first.
func Serialize(tree *SchemaNode) (*js.Schema, error) {
	if tree == nil {
		return nil, NewBuildError("serialize: nil schema")
	}
	return serializeNode(tree)
}

// Canonical inlines and serializes in one step.
func Canonical(tree *SchemaNode) (*js.Schema, error) {
	inlined, err := Inline(tree)
	if err != nil {
		return nil, err
	}
	return Serialize(inlined)
}

// CanonicalJSON returns the canonical schema document bytes.
func CanonicalJSON(tree *SchemaNode) ([]byte, error) {
	s, err := Canonical(tree)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func serializeNode(n *SchemaNode) (*js.Schema, error) {
	out := &js.Schema{
		Description: n.Description,
		Title:       n.Name,
	}
	applyConstraints(out, n.Constraints)
	if n.HasDefault {
		out.Default, out.HasDefault = n.Default, true
	}

	switch n.Kind {
	case KindObject:
		out.Type = "object"
		out.Properties = make([]js.Property, 0, len(n.Fields))
		required := make([]string, 0, len(n.Fields))
		for _, f := range n.Fields {
			child, err := serializeNode(f.Node)
			if err != nil {
				return nil, err
			}
			// the property key already names the field
			child.Title = ""
			out.Properties = append(out.Properties, js.Property{Name: f.Name, Schema: child})
			if f.Required {
				required = append(required, f.Name)
			}
		}
		out.Required = required
	case KindArray:
		out.Type = "array"
		if n.Item != nil {
			item, err := serializeNode(n.Item)
			if err != nil {
				return nil, err
			}
			item.Title = ""
			out.Items = item
		} else {
			out.Items = &js.Schema{}
		}
	case KindPrimitive:
		out.Type = n.Primitive
		out.Enum = n.Enum
	case KindEnum:
		out.Enum = n.Enum
		out.Type = enumType(n.Enum)
	case KindAny:
		// untyped: empty schema
	case KindUnion:
		return nil, NewBuildError("serialize: union types are not representable in the canonical dialect")
	case KindRef:
		return nil, NewBuildError("serialize: unresolved reference %q; inline the tree first", n.Ref)
	default:
		return nil, NewBuildError("serialize: unknown node kind %d", int(n.Kind))
	}
	return out, nil
}

// enumType reports the common JSON type of the enum members, or "" when they
// are heterogeneous.
func enumType(values []any) string {
	t := ""
	for _, v := range values {
		var vt string
		switch v.(type) {
		case string:
			vt = "string"
		case bool:
			vt = "boolean"
		case int, int64, float64, json.Number:
			vt = "number"
		default:
			return ""
		}
		if t == "" {
			t = vt
		} else if t != vt {
			return ""
		}
	}
	return t
}

func applyConstraints(s *js.Schema, c Constraints) {
	s.Pattern = c.Pattern
	s.Format = c.Format
	s.Minimum = c.Minimum
	s.Maximum = c.Maximum
	s.MinLength = c.MinLength
	s.MaxLength = c.MaxLength
	s.MinItems = c.MinItems
	s.MaxItems = c.MaxItems
}
