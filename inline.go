package toolform

// Inline eliminates every reference/definition pair from the tree, expanding
// each referenced definition at its point of use. The input tree is not
// mutated; the result shares no nodes with it.
//
// Distinct, non-cyclic reuses of one definition are each inlined
// independently, even when this duplicates content. A definition revisited
// along the same descent path is a true cycle and yields a BuildError: the
// target dialect cannot represent recursion.
//
// Titles of nested nodes are suppressed here; only the document root keeps
// its name.
func Inline(root *SchemaNode) (*SchemaNode, error) {
	if root == nil {
		return nil, NewBuildError("inline: nil schema")
	}
	defs := make(map[string]*SchemaNode, len(root.Defs))
	for _, d := range root.Defs {
		defs[d.Name] = d.Node
	}
	out, err := inlineNode(root, defs, map[string]bool{}, true)
	if err != nil {
		return nil, err
	}
	out.Defs = nil
	return out, nil
}

func inlineNode(n *SchemaNode, defs map[string]*SchemaNode, active map[string]bool, isRoot bool) (*SchemaNode, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == KindRef {
		target, ok := defs[n.Ref]
		if !ok {
			return nil, NewBuildError("inline: unresolved reference %q", n.Ref)
		}
		if active[n.Ref] {
			return nil, NewBuildError("inline: cyclic reference through %q", n.Ref)
		}
		active[n.Ref] = true
		resolved, err := inlineNode(target, defs, active, false)
		delete(active, n.Ref)
		if err != nil {
			return nil, err
		}
		// The reference site wins over the definition for metadata it sets
		// explicitly (description, default, constraints).
		if n.Description != "" {
			resolved.Description = n.Description
		}
		if n.HasDefault {
			resolved.Default, resolved.HasDefault = n.Default, true
		}
		if !n.Constraints.Empty() {
			resolved.Constraints = n.Constraints
		}
		resolved.Name = ""
		return resolved, nil
	}

	out := n.clone()
	out.Defs = nil
	if !isRoot {
		out.Name = ""
	}
	for i := range out.Fields {
		child, err := inlineNode(out.Fields[i].Node, defs, active, false)
		if err != nil {
			return nil, err
		}
		out.Fields[i].Node = child
	}
	if out.Item != nil {
		item, err := inlineNode(out.Item, defs, active, false)
		if err != nil {
			return nil, err
		}
		out.Item = item
	}
	for i, v := range out.Variants {
		iv, err := inlineNode(v, defs, active, false)
		if err != nil {
			return nil, err
		}
		out.Variants[i] = iv
	}
	return out, nil
}
