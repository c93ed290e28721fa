package adapt_test

import (
	"testing"

	"github.com/toolform/toolform/adapt"
)

func TestYAMLDocumentMatchesJSON(t *testing.T) {
	yamlDoc := []byte(`
type: object
title: Conf
properties:
  b:
    type: integer
  a:
    type: string
    default: "x"
required:
  - b
`)
	jsonDoc := []byte(`{"type":"object","title":"Conf","properties":{"b":{"type":"integer"},"a":{"type":"string","default":"x"}},"required":["b"]}`)

	fromYAML, err := adapt.YAMLDocument(yamlDoc)
	if err != nil {
		t.Fatalf("yaml import: %v", err)
	}
	fromJSON, err := adapt.JSONDocument(jsonDoc)
	if err != nil {
		t.Fatalf("json import: %v", err)
	}
	y, j := canonical(t, fromYAML), canonical(t, fromJSON)
	if y != j {
		t.Fatalf("yaml and json diverge\nyaml: %s\njson: %s", y, j)
	}
	want := `{"type":"object","properties":{"b":{"type":"integer"},"a":{"type":"string","default":"x"}},"required":["b"],"title":"Conf"}`
	if y != want {
		t.Fatalf("canonical mismatch\n got: %s\nwant: %s", y, want)
	}
}

func TestYAMLScalarTags(t *testing.T) {
	tree, err := adapt.YAMLDocument([]byte(`
type: object
properties:
  limit:
    type: integer
    default: 10
  ratio:
    type: number
    default: 0.5
  enabled:
    type: boolean
    default: true
required: []
`))
	if err != nil {
		t.Fatalf("yaml import: %v", err)
	}
	want := `{"type":"object","properties":{"limit":{"type":"integer","default":10},"ratio":{"type":"number","default":0.5},"enabled":{"type":"boolean","default":true}},"required":[]}`
	if got := canonical(t, tree); got != want {
		t.Fatalf("canonical mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestYAMLDocumentInvalid(t *testing.T) {
	if _, err := adapt.YAMLDocument([]byte("[unclosed")); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
	if _, err := adapt.YAMLDocument([]byte("")); err == nil {
		t.Fatalf("expected error for empty document")
	}
}
