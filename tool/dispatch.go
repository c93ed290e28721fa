package tool

import (
	"context"
	"fmt"

	js "github.com/toolform/toolform/jsonschema"
)

// Dispatch is a named tool registry preserving registration order. It is not
// safe for concurrent mutation; register everything up front.
type Dispatch struct {
	order []string
	tools map[string]*Tool
}

// NewDispatch builds a registry from the given tools. Duplicate names are an
// error.
func NewDispatch(tools ...*Tool) (*Dispatch, error) {
	d := &Dispatch{tools: map[string]*Tool{}}
	for _, t := range tools {
		if err := d.Add(t); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add registers one tool.
func (d *Dispatch) Add(t *Tool) error {
	name := t.Name()
	if _, exists := d.tools[name]; exists {
		return fmt.Errorf("tool: %q already registered", name)
	}
	d.order = append(d.order, name)
	d.tools[name] = t
	return nil
}

// Get returns the named tool.
func (d *Dispatch) Get(name string) (*Tool, bool) {
	t, ok := d.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (d *Dispatch) Len() int { return len(d.order) }

// Names returns tool names in registration order.
func (d *Dispatch) Names() []string {
	return append([]string(nil), d.order...)
}

// Tools returns the tools in registration order.
func (d *Dispatch) Tools() []*Tool {
	out := make([]*Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tools[name])
	}
	return out
}

// Schemas returns each tool's canonical schema in registration order.
func (d *Dispatch) Schemas() ([]*js.Schema, error) {
	out := make([]*js.Schema, 0, len(d.order))
	for _, name := range d.order {
		s, err := d.tools[name].Schema()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Call routes a call to the named tool.
func (d *Dispatch) Call(ctx context.Context, name string, args any) (any, error) {
	t, ok := d.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool: %q not found", name)
	}
	return t.Call(ctx, args)
}

// CallJSON routes raw JSON arguments to the named tool.
func (d *Dispatch) CallJSON(ctx context.Context, name string, data []byte) (any, error) {
	t, ok := d.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool: %q not found", name)
	}
	return t.CallJSON(ctx, data)
}

// Union merges two registries into a new one. The receiver's tools come
// first; duplicate names are an error.
func (d *Dispatch) Union(other *Dispatch) (*Dispatch, error) {
	merged, err := NewDispatch(d.Tools()...)
	if err != nil {
		return nil, err
	}
	for _, t := range other.Tools() {
		if err := merged.Add(t); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
