package adapt_test

import (
	"testing"

	toolform "github.com/toolform/toolform"
	"github.com/toolform/toolform/adapt"
)

func TestFromFuncParameters(t *testing.T) {
	tree, err := adapt.FromFunc(adapt.FuncSig{
		Name: "get_weather",
		Doc:  "Get the current weather for a city.",
		Params: []adapt.Param{
			{Name: "city", Type: "", Desc: "city name"},
			{Name: "units", Type: "", Default: "celsius", HasDefault: true},
			{Name: "days", Default: 3, HasDefault: true},
			{Name: "verbose", Type: false, Optional: true},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tree.Name != "get_weather" || tree.Description != "Get the current weather for a city." {
		t.Fatalf("root = %q/%q", tree.Name, tree.Description)
	}

	city, _ := tree.FieldByName("city")
	if !city.Required || city.Node.Description != "city name" {
		t.Fatalf("city = %+v", city)
	}

	units, _ := tree.FieldByName("units")
	if units.Required {
		t.Fatalf("defaulted parameter must be optional")
	}
	if !units.Node.HasDefault || units.Node.Default != "celsius" {
		t.Fatalf("default lost: %+v", units.Node)
	}

	// type inferred from the default when no annotation is given
	days, _ := tree.FieldByName("days")
	if days.Node.Primitive != "integer" {
		t.Fatalf("days type = %q", days.Node.Primitive)
	}

	verbose, _ := tree.FieldByName("verbose")
	if verbose.Required || verbose.Node.Primitive != "boolean" {
		t.Fatalf("verbose = %+v", verbose)
	}
}

func TestFromFuncRequiresName(t *testing.T) {
	_, err := adapt.FromFunc(adapt.FuncSig{Params: []adapt.Param{{Name: "x", Type: ""}}})
	if _, ok := toolform.AsBuildError(err); !ok {
		t.Fatalf("expected BuildError, got %v", err)
	}
	// an explicit name option satisfies the requirement
	tree, err := adapt.FromFunc(adapt.FuncSig{Params: []adapt.Param{{Name: "x", Type: ""}}}, adapt.WithName("anon"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tree.Name != "anon" {
		t.Fatalf("name = %q", tree.Name)
	}
}

func TestFromFuncRejectsUnannotatedParam(t *testing.T) {
	_, err := adapt.FromFunc(adapt.FuncSig{
		Name:   "f",
		Params: []adapt.Param{{Name: "mystery"}},
	})
	if _, ok := toolform.AsBuildError(err); !ok {
		t.Fatalf("expected BuildError, got %v", err)
	}
}
