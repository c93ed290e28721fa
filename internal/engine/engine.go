package engine

// Package engine implements the default validation engine: value coercion,
// bounds checking, and pattern matching over ordered field specifications.
// It is decoupled from the root package and reports through its own
// lightweight Issue type; the root converts at the boundary.

import (
	"bytes"
	"fmt"
	"reflect"
	"regexp"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/toolform/toolform/i18n"
)

// ValueType enumerates the JSON value types a field can require.
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

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "any"
	}
}

// Issue is the engine-local validation failure record.
type Issue struct {
	Code    string
	Path    []any
	Message string
	Input   any
	Ctx     map[string]any
}

// FieldSpec describes one field of a model in wire terms.
type FieldSpec struct {
	Name        string
	Type        ValueType
	Required    bool
	Description string

	Default    any
	HasDefault bool

	Enum    []any
	Pattern string
	Format  string

	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	MinItems  *int
	MaxItems  *int

	Fields []FieldSpec // TypeObject children, in declaration order
	Item   *FieldSpec  // TypeArray element; nil means untyped

	pattern *regexp.Regexp
}

// ModelSpec is the ordered field list a model is defined from.
type ModelSpec struct {
	Name        string
	Description string
	Fields      []FieldSpec
}

// Model is a compiled, reusable validator. It is immutable after Define and
// safe for concurrent use.
type Model struct {
	spec ModelSpec
}

// Define compiles a ModelSpec into a Model. Patterns are compiled eagerly so
// that a malformed constraint fails here, not at call time.
func Define(spec ModelSpec) (*Model, error) {
	for i := range spec.Fields {
		if err := compileSpec(&spec.Fields[i]); err != nil {
			return nil, err
		}
	}
	return &Model{spec: spec}, nil
}

func compileSpec(fs *FieldSpec) error {
	if fs.Pattern != "" {
		re, err := regexp.Compile(fs.Pattern)
		if err != nil {
			return fmt.Errorf("engine: field %q: invalid pattern %q: %w", fs.Name, fs.Pattern, err)
		}
		fs.pattern = re
	}
	for i := range fs.Fields {
		if err := compileSpec(&fs.Fields[i]); err != nil {
			return err
		}
	}
	if fs.Item != nil {
		if err := compileSpec(fs.Item); err != nil {
			return err
		}
	}
	return nil
}

// Spec returns the model's defining specification.
func (m *Model) Spec() ModelSpec { return m.spec }

// Validate coerces and checks input against the model. Fields are checked in
// declaration order and every resulting issue keeps that order. The returned
// map contains only known fields, with defaults applied.
func (m *Model) Validate(input any) (map[string]any, []Issue) {
	src, ok := input.(map[string]any)
	if !ok {
		return nil, []Issue{{
			Code:    "dict_type",
			Path:    nil,
			Message: i18n.T("dict_type", nil),
			Input:   input,
		}}
	}
	return checkFields(m.spec.Fields, src, nil)
}

// ValidateJSON decodes raw JSON (numbers preserved as json.Number) and
// validates the result.
func (m *Model) ValidateJSON(data []byte) (map[string]any, []Issue) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, []Issue{{
			Code:    "json_invalid",
			Path:    nil,
			Message: i18n.T("json_invalid", map[string]string{"error": err.Error()}),
			Input:   string(data),
		}}
	}
	return m.Validate(v)
}

func checkFields(fields []FieldSpec, src map[string]any, path []any) (map[string]any, []Issue) {
	out := make(map[string]any, len(fields))
	var iss []Issue
	for i := range fields {
		fs := &fields[i]
		fpath := appendPath(path, fs.Name)
		if v, exists := src[fs.Name]; exists {
			cv, fiss := checkValue(fs, v, fpath)
			if len(fiss) > 0 {
				iss = append(iss, fiss...)
				continue
			}
			out[fs.Name] = cv
			continue
		}
		if fs.HasDefault {
			out[fs.Name] = fs.Default
			continue
		}
		if fs.Required {
			iss = append(iss, Issue{
				Code:    "missing",
				Path:    fpath,
				Message: i18n.T("missing", nil),
				Input:   src,
			})
		}
	}
	// unknown keys are dropped
	return out, iss
}

func checkValue(fs *FieldSpec, v any, path []any) (any, []Issue) {
	switch fs.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, []Issue{typeIssue("string_type", path, v)}
		}
		if iss := checkString(fs, s, path); len(iss) > 0 {
			return nil, iss
		}
		if iss := checkEnum(fs, s, path); len(iss) > 0 {
			return nil, iss
		}
		return s, nil
	case TypeInteger:
		n, iss := coerceInt(v, path)
		if len(iss) > 0 {
			return nil, iss
		}
		if iss := checkBounds(fs, float64(n), v, path); len(iss) > 0 {
			return nil, iss
		}
		if iss := checkEnum(fs, n, path); len(iss) > 0 {
			return nil, iss
		}
		return n, nil
	case TypeNumber:
		f, iss := coerceFloat(v, path)
		if len(iss) > 0 {
			return nil, iss
		}
		if iss := checkBounds(fs, f, v, path); len(iss) > 0 {
			return nil, iss
		}
		if iss := checkEnum(fs, f, path); len(iss) > 0 {
			return nil, iss
		}
		return f, nil
	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, []Issue{typeIssue("bool_type", path, v)}
		}
		return b, nil
	case TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, []Issue{typeIssue("dict_type", path, v)}
		}
		return checkFields(fs.Fields, m, path)
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return nil, []Issue{typeIssue("list_type", path, v)}
		}
		return checkArray(fs, arr, path)
	default: // TypeAny
		if iss := checkEnum(fs, v, path); len(iss) > 0 {
			return nil, iss
		}
		return v, nil
	}
}

func checkArray(fs *FieldSpec, arr []any, path []any) (any, []Issue) {
	var iss []Issue
	if fs.MinItems != nil && len(arr) < *fs.MinItems {
		iss = append(iss, Issue{
			Code:    "too_short",
			Path:    path,
			Message: i18n.T("too_short", map[string]string{"min_length": strconv.Itoa(*fs.MinItems)}),
			Input:   arr,
			Ctx:     map[string]any{"min_length": *fs.MinItems},
		})
	}
	if fs.MaxItems != nil && len(arr) > *fs.MaxItems {
		iss = append(iss, Issue{
			Code:    "too_long",
			Path:    path,
			Message: i18n.T("too_long", map[string]string{"max_length": strconv.Itoa(*fs.MaxItems)}),
			Input:   arr,
			Ctx:     map[string]any{"max_length": *fs.MaxItems},
		})
	}
	out := make([]any, 0, len(arr))
	for i, e := range arr {
		if fs.Item == nil {
			out = append(out, e)
			continue
		}
		ev, eiss := checkValue(fs.Item, e, appendPath(path, i))
		if len(eiss) > 0 {
			iss = append(iss, eiss...)
			continue
		}
		out = append(out, ev)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func checkString(fs *FieldSpec, s string, path []any) []Issue {
	var iss []Issue
	if fs.MinLength != nil && len([]rune(s)) < *fs.MinLength {
		iss = append(iss, Issue{
			Code:    "string_too_short",
			Path:    path,
			Message: i18n.T("string_too_short", map[string]string{"min_length": strconv.Itoa(*fs.MinLength)}),
			Input:   s,
			Ctx:     map[string]any{"min_length": *fs.MinLength},
		})
	}
	if fs.MaxLength != nil && len([]rune(s)) > *fs.MaxLength {
		iss = append(iss, Issue{
			Code:    "string_too_long",
			Path:    path,
			Message: i18n.T("string_too_long", map[string]string{"max_length": strconv.Itoa(*fs.MaxLength)}),
			Input:   s,
			Ctx:     map[string]any{"max_length": *fs.MaxLength},
		})
	}
	if fs.pattern != nil && !fs.pattern.MatchString(s) {
		iss = append(iss, Issue{
			Code:    "string_pattern_mismatch",
			Path:    path,
			Message: i18n.T("string_pattern_mismatch", map[string]string{"pattern": fs.Pattern}),
			Input:   s,
			Ctx:     map[string]any{"pattern": fs.Pattern},
		})
	}
	if fs.Format != "" {
		if ferr := checkFormat(fs.Format, s); ferr != "" {
			iss = append(iss, Issue{
				Code:    "invalid_format",
				Path:    path,
				Message: i18n.T("invalid_format", map[string]string{"format": ferr}),
				Input:   s,
				Ctx:     map[string]any{"format": fs.Format},
			})
		}
	}
	return iss
}

func checkBounds(fs *FieldSpec, f float64, input any, path []any) []Issue {
	var iss []Issue
	if fs.Minimum != nil && f < *fs.Minimum {
		iss = append(iss, Issue{
			Code:    "greater_than_equal",
			Path:    path,
			Message: i18n.T("greater_than_equal", map[string]string{"ge": formatFloat(*fs.Minimum)}),
			Input:   input,
			Ctx:     map[string]any{"ge": *fs.Minimum},
		})
	}
	if fs.Maximum != nil && f > *fs.Maximum {
		iss = append(iss, Issue{
			Code:    "less_than_equal",
			Path:    path,
			Message: i18n.T("less_than_equal", map[string]string{"le": formatFloat(*fs.Maximum)}),
			Input:   input,
			Ctx:     map[string]any{"le": *fs.Maximum},
		})
	}
	return iss
}

func checkEnum(fs *FieldSpec, v any, path []any) []Issue {
	if len(fs.Enum) == 0 {
		return nil
	}
	for _, e := range fs.Enum {
		if jsonEqual(e, v) {
			return nil
		}
	}
	return []Issue{{
		Code:    "enum",
		Path:    path,
		Message: i18n.T("enum", map[string]string{"expected": enumExpected(fs.Enum)}),
		Input:   v,
		Ctx:     map[string]any{"expected": fs.Enum},
	}}
}

func typeIssue(code string, path []any, input any) Issue {
	return Issue{Code: code, Path: path, Message: i18n.T(code, nil), Input: input}
}

// coerceInt accepts Go integers, json.Number without a fractional part, and
// integral floats. Booleans are their own JSON type and never coerce.
func coerceInt(v any, path []any) (int64, []Issue) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, []Issue{typeIssue("int_from_float", path, v)}
		}
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), nil
		}
		return 0, []Issue{typeIssue("int_from_float", path, v)}
	case string:
		return 0, []Issue{typeIssue("int_parsing", path, v)}
	default:
		return 0, []Issue{typeIssue("int_type", path, v)}
	}
}

func coerceFloat(v any, path []any) (float64, []Issue) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, []Issue{typeIssue("float_type", path, v)}
		}
		return f, nil
	default:
		return 0, []Issue{typeIssue("float_type", path, v)}
	}
}

// jsonEqual compares two values under JSON semantics: numbers compare by
// value regardless of representation, arrays and objects element-wise.
// Enum members may be arrays or objects, so `==` on interface values is off
// limits here: it panics on uncomparable dynamic types.
func jsonEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !jsonEqual(v, bvv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func enumExpected(values []any) string {
	var b bytes.Buffer
	for i, v := range values {
		if i > 0 {
			if i == len(values)-1 {
				b.WriteString(" or ")
			} else {
				b.WriteString(", ")
			}
		}
		fmt.Fprintf(&b, "%#v", v)
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func appendPath(path []any, seg any) []any {
	out := make([]any, 0, len(path)+1)
	out = append(out, path...)
	return append(out, seg)
}
