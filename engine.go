package toolform

import (
	"context"

	"github.com/toolform/toolform/internal/engine"
)

// ValueType enumerates the JSON value types a field specification can demand.
type ValueType int

const (
	TypeAny ValueType = iota
	TypeString
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeObject
	TypeArray
)

// FieldSpec is the wire-level description of one model field handed to an
// Engine. It carries everything the canonical schema of that field carries.
type FieldSpec struct {
	Name        string
	Type        ValueType
	Required    bool
	Description string

	Default    any
	HasDefault bool

	Enum        []any
	Constraints Constraints

	Fields []FieldSpec // TypeObject children, declaration order
	Item   *FieldSpec  // TypeArray element; nil means untyped
}

// ModelSpec is the ordered field list a validating model is defined from.
type ModelSpec struct {
	Name        string
	Description string
	Fields      []FieldSpec
}

// Engine is the narrow capability contract toolform requires from a
// structured-validation engine. Coercion, bounds checking, and pattern
// matching semantics belong to the engine; toolform never reimplements them.
// Any engine satisfying this contract is substitutable.
type Engine interface {
	Define(spec ModelSpec) (Model, error)
}

// Model is a live validating model produced by an Engine. Implementations
// must be immutable after Define and safe for concurrent use.
type Model interface {
	// Validate coerces and checks input, returning the accepted value or an
	// error from which Issues can be extracted via AsIssues. Issue order
	// matches field declaration order.
	Validate(ctx context.Context, input any) (map[string]any, error)
	// ValidateJSON decodes raw JSON and validates the result.
	ValidateJSON(ctx context.Context, data []byte) (map[string]any, error)
	// Spec returns the specification the model was defined from.
	Spec() ModelSpec
}

// DefaultEngine returns the built-in validation engine.
func DefaultEngine() Engine { return defaultEngine{} }

type defaultEngine struct{}

func (defaultEngine) Define(spec ModelSpec) (Model, error) {
	m, err := engine.Define(engineSpec(spec))
	if err != nil {
		return nil, &BuildError{Msg: "define model " + spec.Name, Cause: err}
	}
	return defaultModel{m: m, spec: spec}, nil
}

type defaultModel struct {
	m    *engine.Model
	spec ModelSpec
}

func (dm defaultModel) Validate(ctx context.Context, input any) (map[string]any, error) {
	v, iss := dm.m.Validate(input)
	if len(iss) > 0 {
		return nil, issuesFromEngine(iss)
	}
	return v, nil
}

func (dm defaultModel) ValidateJSON(ctx context.Context, data []byte) (map[string]any, error) {
	v, iss := dm.m.ValidateJSON(data)
	if len(iss) > 0 {
		return nil, issuesFromEngine(iss)
	}
	return v, nil
}

func (dm defaultModel) Spec() ModelSpec { return dm.spec }

// ---- boundary conversions ----

func engineSpec(spec ModelSpec) engine.ModelSpec {
	out := engine.ModelSpec{Name: spec.Name, Description: spec.Description}
	out.Fields = make([]engine.FieldSpec, len(spec.Fields))
	for i, f := range spec.Fields {
		out.Fields[i] = engineField(f)
	}
	return out
}

func engineField(f FieldSpec) engine.FieldSpec {
	ef := engine.FieldSpec{
		Name:        f.Name,
		Type:        engineType(f.Type),
		Required:    f.Required,
		Description: f.Description,
		Default:     f.Default,
		HasDefault:  f.HasDefault,
		Enum:        f.Enum,
		Pattern:     f.Constraints.Pattern,
		Format:      f.Constraints.Format,
		Minimum:     f.Constraints.Minimum,
		Maximum:     f.Constraints.Maximum,
		MinLength:   f.Constraints.MinLength,
		MaxLength:   f.Constraints.MaxLength,
		MinItems:    f.Constraints.MinItems,
		MaxItems:    f.Constraints.MaxItems,
	}
	if len(f.Fields) > 0 {
		ef.Fields = make([]engine.FieldSpec, len(f.Fields))
		for i, c := range f.Fields {
			ef.Fields[i] = engineField(c)
		}
	}
	if f.Item != nil {
		item := engineField(*f.Item)
		ef.Item = &item
	}
	return ef
}

func engineType(t ValueType) engine.ValueType {
	switch t {
	case TypeString:
		return engine.TypeString
	case TypeInteger:
		return engine.TypeInteger
	case TypeNumber:
		return engine.TypeNumber
	case TypeBoolean:
		return engine.TypeBoolean
	case TypeObject:
		return engine.TypeObject
	case TypeArray:
		return engine.TypeArray
	default:
		return engine.TypeAny
	}
}

func issuesFromEngine(in []engine.Issue) Issues {
	out := make(Issues, len(in))
	for i, it := range in {
		out[i] = Issue{
			Path:  it.Path,
			Code:  it.Code,
			Msg:   it.Message,
			Input: it.Input,
			Ctx:   it.Ctx,
		}
	}
	return out
}
