package adapt_test

import (
	"reflect"
	"testing"
	"time"

	toolform "github.com/toolform/toolform"
	"github.com/toolform/toolform/adapt"
)

type account struct {
	ID      int       `json:"id"`
	Email   string    `json:"email" desc:"contact address"`
	Nick    *string   `json:"nick"`
	Note    string    `json:"note,omitempty"`
	Skip    string    `json:"-"`
	hidden  string    // unexported fields never become properties
	Created time.Time `json:"created"`
}

var _ = account{}.hidden

func TestFromStructFields(t *testing.T) {
	tree, err := adapt.FromStruct(account{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tree.Name != "account" {
		t.Fatalf("name = %q", tree.Name)
	}
	var names []string
	for _, f := range tree.Fields {
		names = append(names, f.Name)
	}
	want := []string{"id", "email", "nick", "note", "created"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("fields = %v, want %v", names, want)
	}

	email, _ := tree.FieldByName("email")
	if email.Node.Description != "contact address" {
		t.Fatalf("desc tag lost: %q", email.Node.Description)
	}
	if !email.Required {
		t.Fatalf("plain field must be required")
	}

	nick, _ := tree.FieldByName("nick")
	if nick.Required {
		t.Fatalf("pointer field must be optional")
	}
	if nick.Node.Primitive != "string" {
		t.Fatalf("pointer element type lost: %q", nick.Node.Primitive)
	}

	note, _ := tree.FieldByName("note")
	if note.Required {
		t.Fatalf("omitempty field must be optional")
	}

	created, _ := tree.FieldByName("created")
	if created.Node.Primitive != "string" || created.Node.Constraints.Format != "date-time" {
		t.Fatalf("time.Time mapping = %q/%q", created.Node.Primitive, created.Node.Constraints.Format)
	}
}

func TestFromStructNested(t *testing.T) {
	type address struct {
		City string `json:"city"`
	}
	type person struct {
		Name    string         `json:"name"`
		Address address        `json:"address"`
		Tags    []string       `json:"tags"`
		Meta    map[string]any `json:"meta"`
		Extra   any            `json:"extra"`
	}
	tree, err := adapt.FromStruct(person{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	addr, _ := tree.FieldByName("address")
	if addr.Node.Kind != toolform.KindObject {
		t.Fatalf("nested struct kind = %d", addr.Node.Kind)
	}
	if _, ok := addr.Node.FieldByName("city"); !ok {
		t.Fatalf("nested field lost")
	}
	tags, _ := tree.FieldByName("tags")
	if tags.Node.Kind != toolform.KindArray || tags.Node.Item.Primitive != "string" {
		t.Fatalf("slice mapping = %+v", tags.Node)
	}
	meta, _ := tree.FieldByName("meta")
	if meta.Node.Kind != toolform.KindObject || len(meta.Node.Fields) != 0 {
		t.Fatalf("map mapping = %+v", meta.Node)
	}
	extra, _ := tree.FieldByName("extra")
	if extra.Node.Kind != toolform.KindAny {
		t.Fatalf("interface mapping = %+v", extra.Node)
	}
}

func TestFromStructAcceptsTypeAndPointer(t *testing.T) {
	byType, err := adapt.FromStruct(reflect.TypeOf(account{}))
	if err != nil {
		t.Fatalf("by type: %v", err)
	}
	byPtr, err := adapt.FromStruct(&account{})
	if err != nil {
		t.Fatalf("by pointer: %v", err)
	}
	if byType.Name != byPtr.Name || len(byType.Fields) != len(byPtr.Fields) {
		t.Fatalf("type and pointer disagree: %q/%d vs %q/%d",
			byType.Name, len(byType.Fields), byPtr.Name, len(byPtr.Fields))
	}
}

func TestFromStructNameOverride(t *testing.T) {
	tree, err := adapt.FromStruct(account{}, adapt.WithName("Account"), adapt.WithDescription("an account"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if tree.Name != "Account" || tree.Description != "an account" {
		t.Fatalf("overrides lost: %q/%q", tree.Name, tree.Description)
	}
}

func TestFromStructRejectsNonStruct(t *testing.T) {
	if _, err := adapt.FromStruct(42); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	type bad struct {
		M map[int]string `json:"m"`
	}
	if _, err := adapt.FromStruct(bad{}); err == nil {
		t.Fatalf("expected error for non-string map key")
	}
}
