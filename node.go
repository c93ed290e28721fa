package toolform

// NodeKind identifies a SchemaNode type.
type NodeKind int

const (
	KindObject NodeKind = iota
	KindArray
	KindPrimitive
	KindEnum
	KindUnion
	KindRef
	KindAny
)

// SchemaNode is one node of the intermediate schema tree shared by all
// descriptor adapters. Trees are built per request, never mutated after
// construction, and discarded once a canonical schema or a model has been
// produced.
type SchemaNode struct {
	Kind        NodeKind
	Name        string // emitted as title at the document root only
	Description string

	// Primitive holds the JSON type name for KindPrimitive:
	// "string" | "integer" | "number" | "boolean".
	Primitive string

	// Fields is the ordered child list for KindObject. Order is semantically
	// significant: it must match declaration order of the source.
	Fields []Field

	// Item is the element schema for KindArray; nil means untyped items.
	Item *SchemaNode

	// Enum lists the admitted values for KindEnum.
	Enum []any

	// Variants lists member schemas for KindUnion. Unions are collapsed by
	// the adapters where possible; see Serialize for the residual policy.
	Variants []*SchemaNode

	// Ref names a definition for KindRef; Defs carries the ordered named
	// definitions of the originating document at the tree root. Both are
	// eliminated by Inline.
	Ref  string
	Defs []Def

	Default    any
	HasDefault bool

	Constraints Constraints
}

// Field maps a property name to its schema and requiredness.
type Field struct {
	Name     string
	Node     *SchemaNode
	Required bool
}

// Def is a named definition carried on a document root before inlining.
type Def struct {
	Name string
	Node *SchemaNode
}

// Constraints carries type-specific validation metadata copied through
// verbatim from the source description.
type Constraints struct {
	Pattern   string
	Format    string
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	MinItems  *int
	MaxItems  *int
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return c.Pattern == "" && c.Format == "" &&
		c.Minimum == nil && c.Maximum == nil &&
		c.MinLength == nil && c.MaxLength == nil &&
		c.MinItems == nil && c.MaxItems == nil
}

// FieldByName returns the named field of an object node.
func (n *SchemaNode) FieldByName(name string) (Field, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredNames returns the names of required fields in declaration order.
func (n *SchemaNode) RequiredNames() []string {
	var out []string
	for _, f := range n.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// clone returns a deep copy of the node. Inline works on copies so that the
// input tree is never mutated.
func (n *SchemaNode) clone() *SchemaNode {
	if n == nil {
		return nil
	}
	out := *n
	if n.Fields != nil {
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			out.Fields[i] = Field{Name: f.Name, Node: f.Node.clone(), Required: f.Required}
		}
	}
	out.Item = n.Item.clone()
	if n.Variants != nil {
		out.Variants = make([]*SchemaNode, len(n.Variants))
		for i, v := range n.Variants {
			out.Variants[i] = v.clone()
		}
	}
	if n.Defs != nil {
		out.Defs = make([]Def, len(n.Defs))
		for i, d := range n.Defs {
			out.Defs[i] = Def{Name: d.Name, Node: d.Node.clone()}
		}
	}
	if n.Enum != nil {
		out.Enum = append([]any(nil), n.Enum...)
	}
	return &out
}
