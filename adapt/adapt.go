package adapt

// Package adapt normalizes four heterogeneous shape descriptions — a struct
// type, a callable descriptor, a representative data sample, and a serialized
// schema document — into one schema tree (toolform.SchemaNode). Adapters own
// the translation and never mutate their source; two descriptors of the same
// logical shape produce trees whose canonical schemas are textually
// identical.

// Options tunes adapter behavior. The zero value is the default for every
// adapter.
type Options struct {
	// Name overrides the model name (root title).
	Name string
	// Description overrides the model description.
	Description string
	// DefaultsFromValues makes the sample adapter record scalar sample
	// values as field defaults.
	DefaultsFromValues bool
	// DescriptionsFromStrings makes the sample adapter treat string sample
	// values as field descriptions instead of string exemplars.
	DescriptionsFromStrings bool
	// StrictEmptyArrays turns an empty sequence sample into an error instead
	// of inferring an untyped item.
	StrictEmptyArrays bool
}

// Option mutates Options.
type Option func(*Options)

// WithName overrides the model name.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

// WithDescription overrides the model description.
func WithDescription(desc string) Option { return func(o *Options) { o.Description = desc } }

// WithDefaultsFromValues records sample values as defaults.
func WithDefaultsFromValues() Option { return func(o *Options) { o.DefaultsFromValues = true } }

// WithDescriptionsFromStrings treats string sample values as descriptions.
func WithDescriptionsFromStrings() Option {
	return func(o *Options) { o.DescriptionsFromStrings = true }
}

// WithStrictEmptyArrays rejects samples containing empty sequences.
func WithStrictEmptyArrays() Option { return func(o *Options) { o.StrictEmptyArrays = true } }

func applyOptions(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
