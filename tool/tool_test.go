package tool_test

import (
	"context"
	"errors"
	"testing"

	toolform "github.com/toolform/toolform"
	"github.com/toolform/toolform/adapt"
	"github.com/toolform/toolform/tool"
)

func addTool(t *testing.T, opts ...tool.Option) *tool.Tool {
	t.Helper()
	tl, err := tool.Wrap(adapt.FuncSig{
		Name: "add",
		Doc:  "Add two integers.",
		Params: []adapt.Param{
			{Name: "a", Type: 0},
			{Name: "b", Type: 0},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return args["a"].(int64) + args["b"].(int64), nil
	}, opts...)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	return tl
}

func TestWrapAndCall(t *testing.T) {
	tl := addTool(t)
	if tl.Name() != "add" || tl.Description() != "Add two integers." {
		t.Fatalf("identity = %q/%q", tl.Name(), tl.Description())
	}
	got, err := tl.Call(context.Background(), map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != int64(3) {
		t.Fatalf("result = %#v, want 3", got)
	}
}

func TestCallJSON(t *testing.T) {
	tl := addTool(t)
	got, err := tl.CallJSON(context.Background(), []byte(`{"a":20,"b":22}`))
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != int64(42) {
		t.Fatalf("result = %#v, want 42", got)
	}
}

func TestCallValidationFailureYieldsFeedback(t *testing.T) {
	tl := addTool(t)
	_, err := tl.Call(context.Background(), map[string]any{"a": 1})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	env, ok := tool.Feedback(err)
	if !ok {
		t.Fatalf("feedback not derivable from %v", err)
	}
	if env.Success {
		t.Fatalf("success must be false")
	}
	if len(env.Errors) != 1 || env.Errors[0].Type != toolform.CodeMissing || env.Errors[0].Loc != "('b',)" {
		t.Fatalf("errors = %+v", env.Errors)
	}
}

func TestFeedbackIgnoresGenuineErrors(t *testing.T) {
	if _, ok := tool.Feedback(errors.New("boom")); ok {
		t.Fatalf("plain error must not translate")
	}
}

func TestWrapOverrides(t *testing.T) {
	tl := addTool(t, tool.WithName("sum"), tool.WithDescription("Sum."))
	if tl.Name() != "sum" || tl.Description() != "Sum." {
		t.Fatalf("identity = %q/%q", tl.Name(), tl.Description())
	}
}

func TestNewFromTree(t *testing.T) {
	tree, err := adapt.FromJSONSample("echo", []byte(`{"msg":"string"}`))
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	tl, err := tool.New(tree, func(ctx context.Context, args map[string]any) (any, error) {
		return args["msg"], nil
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := tl.Call(context.Background(), map[string]any{"msg": "hi"})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != "hi" {
		t.Fatalf("result = %#v", got)
	}
}

func TestDispatch(t *testing.T) {
	a := addTool(t)
	b := addTool(t, tool.WithName("sum"))
	d, err := tool.NewDispatch(a, b)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("len = %d", d.Len())
	}
	names := d.Names()
	if names[0] != "add" || names[1] != "sum" {
		t.Fatalf("names = %v", names)
	}
	if _, ok := d.Get("add"); !ok {
		t.Fatalf("add not found")
	}
	got, err := d.Call(context.Background(), "sum", map[string]any{"a": 1, "b": 1})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != int64(2) {
		t.Fatalf("result = %#v", got)
	}
	if _, err := d.Call(context.Background(), "nope", nil); err == nil {
		t.Fatalf("unknown tool accepted")
	}
	if err := d.Add(addTool(t)); err == nil {
		t.Fatalf("duplicate name accepted")
	}
}

func TestDispatchUnion(t *testing.T) {
	d1, err := tool.NewDispatch(addTool(t))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	d2, err := tool.NewDispatch(addTool(t, tool.WithName("sum")))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	merged, err := d1.Union(d2)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	names := merged.Names()
	if len(names) != 2 || names[0] != "add" || names[1] != "sum" {
		t.Fatalf("names = %v", names)
	}
	// originals are untouched
	if d1.Len() != 1 || d2.Len() != 1 {
		t.Fatalf("union mutated inputs: %d/%d", d1.Len(), d2.Len())
	}
	if _, err := d1.Union(d1); err == nil {
		t.Fatalf("self-union must collide")
	}
}

func TestDispatchSchemas(t *testing.T) {
	d, err := tool.NewDispatch(addTool(t), addTool(t, tool.WithName("sum")))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	schemas, err := d.Schemas()
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if len(schemas) != 2 || schemas[0].Title != "add" || schemas[1].Title != "sum" {
		t.Fatalf("schemas = %+v", schemas)
	}
}
