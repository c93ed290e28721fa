package adapt_test

import (
	"testing"

	toolform "github.com/toolform/toolform"
	"github.com/toolform/toolform/adapt"
)

const weatherParams = `{"type":"object","properties":{"city":{"type":"string"},"days":{"type":"integer","default":3}},"required":["city"]}`

func canonical(t *testing.T, tree *toolform.SchemaNode) string {
	t.Helper()
	b, err := toolform.CanonicalJSON(tree)
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	return string(b)
}

// The importer unwraps the common vendor envelopes down to the parameter
// schema; all wrappings of the same schema canonicalize identically.
func TestJSONDocumentUnwrapsEnvelopes(t *testing.T) {
	docs := map[string]string{
		"generic":   `{"name":"get_weather","description":"Get weather","parameters":` + weatherParams + `}`,
		"openai":    `{"type":"function","function":{"name":"get_weather","description":"Get weather","parameters":` + weatherParams + `}}`,
		"response":  `{"json_schema":{"name":"get_weather","description":"Get weather","schema":` + weatherParams + `}}`,
		"anthropic": `{"name":"get_weather","description":"Get weather","input_schema":` + weatherParams + `}`,
	}
	want := `{"type":"object","description":"Get weather","properties":{"city":{"type":"string"},"days":{"type":"integer","default":3}},"required":["city"],"title":"get_weather"}`
	for label, doc := range docs {
		tree, err := adapt.JSONDocument([]byte(doc))
		if err != nil {
			t.Fatalf("%s: import: %v", label, err)
		}
		if got := canonical(t, tree); got != want {
			t.Fatalf("%s: canonical mismatch\n got: %s\nwant: %s", label, got, want)
		}
	}
}

func TestJSONDocumentPlainSchema(t *testing.T) {
	tree, err := adapt.JSONDocument([]byte(weatherParams), adapt.WithName("Weather"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if tree.Name != "Weather" {
		t.Fatalf("name = %q", tree.Name)
	}
	city, ok := tree.FieldByName("city")
	if !ok || !city.Required {
		t.Fatalf("city = %+v, %v", city, ok)
	}
	days, _ := tree.FieldByName("days")
	if days.Required {
		t.Fatalf("days must be optional (absent from required)")
	}
	if !days.Node.HasDefault {
		t.Fatalf("default lost")
	}
}

func TestJSONDocumentImportsRefs(t *testing.T) {
	doc := `{"type":"object","properties":{"home":{"$ref":"#/$defs/Address","description":"home address"}},"required":["home"],"$defs":{"Address":{"type":"object","properties":{"city":{"type":"string"}},"required":["city"]}},"title":"Person"}`
	tree, err := adapt.JSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	home, _ := tree.FieldByName("home")
	if home.Node.Kind != toolform.KindRef || home.Node.Ref != "Address" {
		t.Fatalf("home = %+v", home.Node)
	}
	if home.Node.Description != "home address" {
		t.Fatalf("sibling metadata lost: %q", home.Node.Description)
	}
	if len(tree.Defs) != 1 || tree.Defs[0].Name != "Address" {
		t.Fatalf("defs = %+v", tree.Defs)
	}
	want := `{"type":"object","properties":{"home":{"type":"object","description":"home address","properties":{"city":{"type":"string"}},"required":["city"]}},"required":["home"],"title":"Person"}`
	if got := canonical(t, tree); got != want {
		t.Fatalf("canonical mismatch\n got: %s\nwant: %s", got, want)
	}
}

// pydantic wraps a referenced field in a single-element allOf to attach
// sibling metadata; the importer must merge it away, never drop the type.
func TestJSONDocumentMergesSingleElementAllOf(t *testing.T) {
	doc := `{"type":"object","properties":{"item":{"allOf":[{"$ref":"#/$defs/Item"}],"description":"the item"}},"required":["item"],"$defs":{"Item":{"type":"object","properties":{"sku":{"type":"string"}},"required":["sku"]}},"title":"Order"}`
	tree, err := adapt.JSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	item, _ := tree.FieldByName("item")
	if item.Node.Kind != toolform.KindRef || item.Node.Ref != "Item" {
		t.Fatalf("item = %+v", item.Node)
	}
	if item.Node.Description != "the item" {
		t.Fatalf("sibling description lost: %q", item.Node.Description)
	}
	want := `{"type":"object","properties":{"item":{"type":"object","description":"the item","properties":{"sku":{"type":"string"}},"required":["sku"]}},"required":["item"],"title":"Order"}`
	if got := canonical(t, tree); got != want {
		t.Fatalf("canonical mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestJSONDocumentAllOfInline(t *testing.T) {
	// the wrapped element may be a full schema rather than a reference
	doc := `{"type":"object","properties":{"count":{"allOf":[{"type":"integer","minimum":1}],"default":3}},"required":[],"title":"M"}`
	tree, err := adapt.JSONDocument([]byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := `{"type":"object","properties":{"count":{"type":"integer","minimum":1,"default":3}},"required":[],"title":"M"}`
	if got := canonical(t, tree); got != want {
		t.Fatalf("canonical mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestJSONDocumentRejectsMultiElementAllOf(t *testing.T) {
	doc := `{"type":"object","properties":{"x":{"allOf":[{"type":"string"},{"minLength":1}]}}}`
	_, err := adapt.JSONDocument([]byte(doc))
	if _, ok := toolform.AsBuildError(err); !ok {
		t.Fatalf("expected BuildError, got %v", err)
	}
}

func TestJSONDocumentUntypedItems(t *testing.T) {
	tree, err := adapt.JSONDocument([]byte(`{"type":"object","properties":{"xs":{"type":"array","items":{}}},"required":["xs"]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	xs, _ := tree.FieldByName("xs")
	if xs.Node.Kind != toolform.KindArray || xs.Node.Item != nil {
		t.Fatalf("xs = %+v", xs.Node)
	}
}

func TestJSONDocumentBareEnum(t *testing.T) {
	tree, err := adapt.JSONDocument([]byte(`{"type":"object","properties":{"color":{"enum":["red","green"]}},"required":["color"]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	color, _ := tree.FieldByName("color")
	if color.Node.Kind != toolform.KindEnum || len(color.Node.Enum) != 2 {
		t.Fatalf("color = %+v", color.Node)
	}
}

func TestJSONDocumentRejectsUnsupportedType(t *testing.T) {
	_, err := adapt.JSONDocument([]byte(`{"type":"object","properties":{"x":{"type":"null"}}}`))
	if _, ok := toolform.AsBuildError(err); !ok {
		t.Fatalf("expected BuildError, got %v", err)
	}
}

func TestJSONDocumentInvalid(t *testing.T) {
	_, err := adapt.JSONDocument([]byte(`{"type":"object",`))
	if _, ok := toolform.AsBuildError(err); !ok {
		t.Fatalf("expected BuildError, got %v", err)
	}
}
