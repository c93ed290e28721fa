package adapt

import (
	"reflect"

	toolform "github.com/toolform/toolform"
)

// FuncSig describes a callable: its name, docstring, and ordered parameters.
// It is produced outside the core (for example by a sandboxed loader or by
// hand); this package only ever consumes the already-resolved descriptor and
// never executes source text.
type FuncSig struct {
	Name   string
	Doc    string
	Params []Param
}

// Param is one parameter of a callable, in declaration order.
type Param struct {
	Name string
	// Type is a Go type exemplar (such as "" or 0) or a reflect.Type. A nil
	// Type is inferred from Default when one is present.
	Type any
	// Desc becomes the parameter description.
	Desc string
	// Default makes the parameter non-required and is exported as the
	// field's default.
	Default    any
	HasDefault bool
	// Optional marks a parameter non-required without a default ("optional
	// of T" collapses to T with Required=false).
	Optional bool
}

// FromFunc builds a schema tree from a callable descriptor. Parameters
// become fields in declaration order; a parameter with a default is
// non-required; the docstring becomes the root description. Return types are
// not part of a tool's input shape and do not appear here.
func FromFunc(sig FuncSig, opts ...Option) (*toolform.SchemaNode, error) {
	o := applyOptions(opts)
	if sig.Name == "" && o.Name == "" {
		return nil, toolform.NewBuildError("adapt: callable descriptor has no name")
	}
	root := &toolform.SchemaNode{
		Kind:        toolform.KindObject,
		Name:        sig.Name,
		Description: sig.Doc,
	}
	if o.Name != "" {
		root.Name = o.Name
	}
	if o.Description != "" {
		root.Description = o.Description
	}
	for _, p := range sig.Params {
		node, err := paramNode(p, sig.Name)
		if err != nil {
			return nil, err
		}
		root.Fields = append(root.Fields, toolform.Field{
			Name:     p.Name,
			Node:     node,
			Required: !p.HasDefault && !p.Optional,
		})
	}
	return root, nil
}

func paramNode(p Param, funcName string) (*toolform.SchemaNode, error) {
	t, err := paramType(p, funcName)
	if err != nil {
		return nil, err
	}
	node, _, err := nodeFromGoType(t)
	if err != nil {
		return nil, toolform.NewBuildError("adapt: parameter %q of %q: %v", p.Name, funcName, err)
	}
	node.Description = p.Desc
	if p.HasDefault {
		node.Default, node.HasDefault = p.Default, true
	}
	return node, nil
}

func paramType(p Param, funcName string) (reflect.Type, error) {
	if p.Type != nil {
		if t, ok := p.Type.(reflect.Type); ok {
			return t, nil
		}
		return reflect.TypeOf(p.Type), nil
	}
	if p.HasDefault && p.Default != nil {
		return reflect.TypeOf(p.Default), nil
	}
	return nil, toolform.NewBuildError("adapt: parameter %q of %q has neither annotation nor default", p.Name, funcName)
}
