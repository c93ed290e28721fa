package tool

// Package tool binds callable descriptors to Go functions. A wrapped tool
// validates its arguments through a synthesized model before invocation and
// exposes the canonical schema in several provider flavors.

import (
	"context"

	toolform "github.com/toolform/toolform"
	"github.com/toolform/toolform/adapt"
	js "github.com/toolform/toolform/jsonschema"
)

// Func is the invocation shape of a wrapped tool: it receives the validated,
// default-applied argument map.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Tool couples a validating model with the function it guards.
type Tool struct {
	model *toolform.ValidatingModel
	fn    Func
}

type config struct {
	engine toolform.Engine
	opts   []adapt.Option
}

// Option configures Wrap and New.
type Option func(*config)

// WithEngine substitutes the validation engine (default: toolform.DefaultEngine).
func WithEngine(eng toolform.Engine) Option { return func(c *config) { c.engine = eng } }

// WithName overrides the tool name.
func WithName(name string) Option {
	return func(c *config) { c.opts = append(c.opts, adapt.WithName(name)) }
}

// WithDescription overrides the tool description.
func WithDescription(desc string) Option {
	return func(c *config) { c.opts = append(c.opts, adapt.WithDescription(desc)) }
}

// Wrap builds a tool from a callable descriptor. The descriptor's parameters
// become the model fields; invocation validates arguments first and raises
// the engine's ordered Issues on mismatch.
func Wrap(sig adapt.FuncSig, fn Func, opts ...Option) (*Tool, error) {
	c := applyConfig(opts)
	node, err := adapt.FromFunc(sig, c.opts...)
	if err != nil {
		return nil, err
	}
	return newTool(node, fn, c)
}

// New builds a tool directly from a schema tree.
func New(node *toolform.SchemaNode, fn Func, opts ...Option) (*Tool, error) {
	return newTool(node, fn, applyConfig(opts))
}

func newTool(node *toolform.SchemaNode, fn Func, c config) (*Tool, error) {
	model, err := toolform.Synthesize(node, c.engine)
	if err != nil {
		return nil, err
	}
	return &Tool{model: model, fn: fn}, nil
}

func applyConfig(opts []Option) config {
	c := config{engine: toolform.DefaultEngine()}
	for _, fn := range opts {
		fn(&c)
	}
	return c
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.model.Name() }

// Description returns the tool description.
func (t *Tool) Description() string { return t.model.Description() }

// Model returns the synthesized validating model.
func (t *Tool) Model() *toolform.ValidatingModel { return t.model }

// Schema returns the canonical schema of the tool's arguments.
func (t *Tool) Schema() (*js.Schema, error) { return t.model.Schema() }

// Call validates args and invokes the wrapped function. On validation
// failure the returned error carries ordered Issues; convert it with
// Feedback for an agent loop.
func (t *Tool) Call(ctx context.Context, args any) (any, error) {
	validated, err := t.model.Validate(ctx, args)
	if err != nil {
		return nil, err
	}
	return t.fn(ctx, validated)
}

// CallJSON decodes raw JSON arguments, validates them, and invokes the
// wrapped function.
func (t *Tool) CallJSON(ctx context.Context, data []byte) (any, error) {
	validated, err := t.model.ValidateJSON(ctx, data)
	if err != nil {
		return nil, err
	}
	return t.fn(ctx, validated)
}

// Feedback converts a validation failure into a feedback envelope. The
// second result is false when err does not carry Issues (genuine failures
// keep propagating instead of being narrated to the assistant).
func Feedback(err error) (toolform.FeedbackEnvelope, bool) {
	iss, ok := toolform.AsIssues(err)
	if !ok {
		return toolform.FeedbackEnvelope{}, false
	}
	return toolform.Translate(iss), true
}
