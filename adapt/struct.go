package adapt

import (
	"reflect"
	"strings"
	"time"

	toolform "github.com/toolform/toolform"
)

// FromStruct builds a schema tree from a struct type or value. Fields appear
// in declaration order; nested structs recurse. The model name defaults to
// the struct type name.
//
// Field resolution: the json tag names the property ("-" disables the
// field), a desc tag becomes the property description, pointer fields and
// fields tagged ",omitempty" are optional, everything else is required.
func FromStruct(v any, opts ...Option) (*toolform.SchemaNode, error) {
	o := applyOptions(opts)
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return nil, toolform.NewBuildError("adapt: nil struct type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, toolform.NewBuildError("adapt: %s is not a struct type", t)
	}
	root, err := structNode(t)
	if err != nil {
		return nil, err
	}
	root.Name = t.Name()
	if o.Name != "" {
		root.Name = o.Name
	}
	root.Description = o.Description
	return root, nil
}

func structNode(t reflect.Type) (*toolform.SchemaNode, error) {
	node := &toolform.SchemaNode{Kind: toolform.KindObject}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		key, omitempty := resolveStructKey(sf)
		if key == "-" {
			continue
		}
		child, optional, err := nodeFromGoType(sf.Type)
		if err != nil {
			return nil, toolform.NewBuildError("adapt: field %s.%s: %v", t.Name(), sf.Name, err)
		}
		child.Description = sf.Tag.Get("desc")
		node.Fields = append(node.Fields, toolform.Field{
			Name:     key,
			Node:     child,
			Required: !optional && !omitempty,
		})
	}
	return node, nil
}

// resolveStructKey applies the repository-wide rule to resolve a struct
// field's external key: json tag name, then the field name; "-" disables the
// field.
func resolveStructKey(sf reflect.StructField) (key string, omitempty bool) {
	jt := sf.Tag.Get("json")
	if jt == "" {
		return sf.Name, false
	}
	name := jt
	if i := strings.IndexByte(jt, ','); i >= 0 {
		name = jt[:i]
		omitempty = strings.Contains(jt[i:], "omitempty")
	}
	if name == "" {
		name = sf.Name
	}
	return name, omitempty
}

var timeType = reflect.TypeOf(time.Time{})

// nodeFromGoType maps a Go type onto a schema node. Pointer types report
// optional=true; their element type is mapped.
func nodeFromGoType(t reflect.Type) (*toolform.SchemaNode, bool, error) {
	optional := false
	for t.Kind() == reflect.Pointer {
		optional = true
		t = t.Elem()
	}
	if t == timeType {
		return &toolform.SchemaNode{
			Kind:        toolform.KindPrimitive,
			Primitive:   "string",
			Constraints: toolform.Constraints{Format: "date-time"},
		}, optional, nil
	}
	switch t.Kind() {
	case reflect.String:
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "string"}, optional, nil
	case reflect.Bool:
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "boolean"}, optional, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "integer"}, optional, nil
	case reflect.Float32, reflect.Float64:
		return &toolform.SchemaNode{Kind: toolform.KindPrimitive, Primitive: "number"}, optional, nil
	case reflect.Struct:
		n, err := structNode(t)
		return n, optional, err
	case reflect.Slice, reflect.Array:
		item, _, err := nodeFromGoType(t.Elem())
		if err != nil {
			return nil, false, err
		}
		return &toolform.SchemaNode{Kind: toolform.KindArray, Item: item}, optional, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, false, toolform.NewBuildError("unsupported map key type %s", t.Key())
		}
		return &toolform.SchemaNode{Kind: toolform.KindObject}, optional, nil
	case reflect.Interface:
		return &toolform.SchemaNode{Kind: toolform.KindAny}, optional, nil
	default:
		return nil, false, toolform.NewBuildError("unsupported type %s", t)
	}
}
