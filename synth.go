package toolform

import (
	"context"

	json "github.com/goccy/go-json"

	js "github.com/toolform/toolform/jsonschema"
)

// ValidatingModel binds an inlined schema tree to a live engine model. Its
// emitted schema is reconstructed from the engine's own field specification
// and re-normalized, so that it reproduces the canonical schema of the
// originating tree byte-for-byte. That equality is the central correctness
// contract of this package; any divergence between the two paths is a defect.
type ValidatingModel struct {
	model Model
}

// Synthesize builds a validating model from a schema tree by delegating
// field-by-field construction to the engine. The tree is inlined first; its
// root must be an object.
func Synthesize(tree *SchemaNode, eng Engine) (*ValidatingModel, error) {
	inlined, err := Inline(tree)
	if err != nil {
		return nil, err
	}
	spec, err := SpecFromTree(inlined)
	if err != nil {
		return nil, err
	}
	m, err := eng.Define(spec)
	if err != nil {
		return nil, err
	}
	return &ValidatingModel{model: m}, nil
}

// Name returns the model name.
func (vm *ValidatingModel) Name() string { return vm.model.Spec().Name }

// Description returns the model description.
func (vm *ValidatingModel) Description() string { return vm.model.Spec().Description }

// Validate checks input against the model. On failure the returned error
// carries ordered Issues (see AsIssues).
func (vm *ValidatingModel) Validate(ctx context.Context, input any) (map[string]any, error) {
	return vm.model.Validate(ctx, input)
}

// ValidateJSON decodes raw JSON and validates the result.
func (vm *ValidatingModel) ValidateJSON(ctx context.Context, data []byte) (map[string]any, error) {
	return vm.model.ValidateJSON(ctx, data)
}

// SchemaTree reconstructs the schema tree from the engine model's own field
// specification.
func (vm *ValidatingModel) SchemaTree() *SchemaNode {
	return TreeFromSpec(vm.model.Spec())
}

// Schema emits the model's canonical schema: the reconstructed tree passed
// through Inline and Serialize again.
func (vm *ValidatingModel) Schema() (*js.Schema, error) {
	return Canonical(vm.SchemaTree())
}

// SchemaJSON returns the canonical schema document bytes.
func (vm *ValidatingModel) SchemaJSON() ([]byte, error) {
	s, err := vm.Schema()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// SpecFromTree converts an inlined object tree into a ModelSpec. References
// must already be resolved and unions collapsed; either yields a BuildError.
func SpecFromTree(tree *SchemaNode) (ModelSpec, error) {
	if tree == nil || tree.Kind != KindObject {
		return ModelSpec{}, NewBuildError("synthesize: model root must be an object")
	}
	spec := ModelSpec{Name: tree.Name, Description: tree.Description}
	spec.Fields = make([]FieldSpec, 0, len(tree.Fields))
	for _, f := range tree.Fields {
		fs, err := fieldSpec(f.Name, f.Node, f.Required)
		if err != nil {
			return ModelSpec{}, err
		}
		spec.Fields = append(spec.Fields, fs)
	}
	return spec, nil
}

func fieldSpec(name string, n *SchemaNode, required bool) (FieldSpec, error) {
	fs := FieldSpec{
		Name:        name,
		Required:    required,
		Description: n.Description,
		Default:     n.Default,
		HasDefault:  n.HasDefault,
		Constraints: n.Constraints,
	}
	switch n.Kind {
	case KindPrimitive:
		fs.Enum = n.Enum
		switch n.Primitive {
		case "string":
			fs.Type = TypeString
		case "integer":
			fs.Type = TypeInteger
		case "number":
			fs.Type = TypeNumber
		case "boolean":
			fs.Type = TypeBoolean
		default:
			return FieldSpec{}, NewBuildError("synthesize: unknown primitive %q", n.Primitive)
		}
	case KindEnum:
		fs.Enum = n.Enum
		switch enumType(n.Enum) {
		case "string":
			fs.Type = TypeString
		case "number":
			fs.Type = TypeNumber
		default:
			fs.Type = TypeAny
		}
	case KindObject:
		fs.Type = TypeObject
		fs.Fields = make([]FieldSpec, 0, len(n.Fields))
		for _, f := range n.Fields {
			cfs, err := fieldSpec(f.Name, f.Node, f.Required)
			if err != nil {
				return FieldSpec{}, err
			}
			fs.Fields = append(fs.Fields, cfs)
		}
	case KindArray:
		fs.Type = TypeArray
		if n.Item != nil {
			item, err := fieldSpec("", n.Item, true)
			if err != nil {
				return FieldSpec{}, err
			}
			fs.Item = &item
		}
	case KindAny:
		fs.Type = TypeAny
	case KindUnion:
		return FieldSpec{}, NewBuildError("synthesize: union field %q is not representable; collapse it first", name)
	case KindRef:
		return FieldSpec{}, NewBuildError("synthesize: unresolved reference %q", n.Ref)
	}
	return fs, nil
}

// TreeFromSpec is the inverse of SpecFromTree. Conversions are exact in both
// directions: a tree reconstructed from a spec serializes to the same bytes
// as the tree the spec came from.
func TreeFromSpec(spec ModelSpec) *SchemaNode {
	root := &SchemaNode{
		Kind:        KindObject,
		Name:        spec.Name,
		Description: spec.Description,
	}
	root.Fields = make([]Field, 0, len(spec.Fields))
	for _, fs := range spec.Fields {
		root.Fields = append(root.Fields, Field{Name: fs.Name, Node: nodeFromField(fs), Required: fs.Required})
	}
	return root
}

func nodeFromField(fs FieldSpec) *SchemaNode {
	n := &SchemaNode{
		Description: fs.Description,
		Default:     fs.Default,
		HasDefault:  fs.HasDefault,
		Constraints: fs.Constraints,
	}
	switch fs.Type {
	case TypeString:
		n.Kind, n.Primitive, n.Enum = KindPrimitive, "string", fs.Enum
	case TypeInteger:
		n.Kind, n.Primitive, n.Enum = KindPrimitive, "integer", fs.Enum
	case TypeNumber:
		n.Kind, n.Primitive, n.Enum = KindPrimitive, "number", fs.Enum
	case TypeBoolean:
		n.Kind, n.Primitive, n.Enum = KindPrimitive, "boolean", fs.Enum
	case TypeObject:
		n.Kind = KindObject
		n.Fields = make([]Field, 0, len(fs.Fields))
		for _, c := range fs.Fields {
			n.Fields = append(n.Fields, Field{Name: c.Name, Node: nodeFromField(c), Required: c.Required})
		}
	case TypeArray:
		n.Kind = KindArray
		if fs.Item != nil {
			n.Item = nodeFromField(*fs.Item)
		}
	default:
		if fs.Enum != nil {
			n.Kind = KindEnum
			n.Enum = fs.Enum
		} else {
			n.Kind = KindAny
		}
	}
	return n
}
