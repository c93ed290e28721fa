package adapt

import (
	"strings"

	json "github.com/goccy/go-json"

	toolform "github.com/toolform/toolform"
	js "github.com/toolform/toolform/jsonschema"
)

// FromJSONSample infers a schema tree from a representative JSON sample. The
// sample's own key order becomes the field order, so the sample must be
// passed as raw JSON; a Go map would not remember it.
//
// Inference rules, applied per value: booleans map to boolean (checked ahead
// of any numeric rule, so true never reads as an integer), numbers with a
// fractional part map to number, integral numbers to integer, strings to
// string, nested objects recurse, and arrays take their item type from the
// first element. An empty array infers an untyped item unless
// WithStrictEmptyArrays is set.
func FromJSONSample(name string, data []byte, opts ...Option) (*toolform.SchemaNode, error) {
	o := applyOptions(opts)
	v, err := js.DecodeValue(data)
	if err != nil {
		return nil, &toolform.BuildError{Msg: "adapt: invalid sample", Cause: err}
	}
	obj, ok := v.(js.Object)
	if !ok {
		return nil, toolform.NewBuildError("adapt: sample root must be an object")
	}
	if o.Name != "" {
		name = o.Name
	}
	root, err := sampleObject(obj, name, o)
	if err != nil {
		return nil, err
	}
	root.Name = name
	root.Description = o.Description
	return root, nil
}

func sampleObject(obj js.Object, modelName string, o Options) (*toolform.SchemaNode, error) {
	node := &toolform.SchemaNode{Kind: toolform.KindObject}
	for _, m := range obj {
		child, scalar, err := sampleNode(m.Value, modelName+"_"+capitalize(m.Name), o)
		if err != nil {
			return nil, toolform.NewBuildError("adapt: sample key %q: %v", m.Name, err)
		}
		required := true
		if scalar {
			if o.DefaultsFromValues {
				child.Default, child.HasDefault = m.Value, true
				required = false
			}
			if o.DescriptionsFromStrings {
				if s, ok := m.Value.(string); ok {
					child.Description = s
					child.Default, child.HasDefault = nil, false
					required = true
				}
			}
		}
		node.Fields = append(node.Fields, toolform.Field{Name: m.Name, Node: child, Required: required})
	}
	return node, nil
}

// sampleNode infers one node. scalar reports whether the value was a leaf
// usable as a default.
func sampleNode(v any, modelName string, o Options) (*toolform.SchemaNode, bool, error) {
	switch s := v.(type) {
	case bool:
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "boolean"}, true, nil
	case json.Number:
		if isIntegral(s) {
			return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "integer"}, true, nil
		}
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "number"}, true, nil
	case string:
		// a value naming a JSON type is an annotation, not an exemplar:
		// {"age": "integer"} declares an integer field
		if prim, ok := typeNames[s]; ok {
			return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: prim}, false, nil
		}
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "string"}, true, nil
	case js.Object:
		n, err := sampleObject(s, modelName, o)
		if err != nil {
			return nil, false, err
		}
		n.Name = modelName
		return n, false, nil
	case []any:
		if len(s) == 0 {
			if o.StrictEmptyArrays {
				return nil, false, toolform.NewBuildError("empty array sample is ambiguous")
			}
			return &toolform.SchemaNode{Kind: toolform.KindArray}, false, nil
		}
		item, _, err := sampleNode(s[0], modelName+"_Item", o)
		if err != nil {
			return nil, false, err
		}
		return &toolform.SchemaNode{Kind: toolform.KindArray, Item: item}, false, nil
	case nil:
		return &toolform.SchemaNode{Kind: toolform.KindAny}, false, nil
	default:
		return nil, false, toolform.NewBuildError("cannot infer a type from %T", v)
	}
}

var typeNames = map[string]string{
	"string":  "string",
	"str":     "string",
	"integer": "integer",
	"int":     "integer",
	"number":  "number",
	"float":   "number",
	"boolean": "boolean",
	"bool":    "boolean",
}

func isIntegral(n json.Number) bool {
	return !strings.ContainsAny(n.String(), ".eE")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
