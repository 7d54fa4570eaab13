package exprhook_test

import (
	"testing"

	dico "github.com/dico-go/dico"
	"github.com/dico-go/dico/dsl"
	"github.com/dico-go/dico/exprhook"
)

func TestDerive_AddsComputedKeyToProjection(t *testing.T) {
	s := dsl.Doc("profile").
		Field("firstname", dsl.String()).
		Field("lastname", dsl.String()).
		Owner("firstname", "lastname").
		PreOwner(exprhook.MustDerive("full_name", `firstname + " " + lastname`)).
		MustBuild()

	doc, err := s.NewFrom(map[string]any{"firstname": "Ada", "lastname": "Lovelace"})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	owner, err := doc.ForOwner()
	if err != nil {
		t.Fatalf("ForOwner: %v", err)
	}
	if owner["full_name"] != "Ada Lovelace" {
		t.Fatalf("unexpected derived key: %v", owner)
	}
}

func TestDerive_CompileErrorAtDeclarationTime(t *testing.T) {
	if _, err := exprhook.Derive("x", "1 +"); err == nil {
		t.Fatalf("expected compile error for broken expression")
	}
	if _, err := exprhook.Derive("x", ""); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestDerive_RuntimeErrorAbortsProjection(t *testing.T) {
	s := dsl.Doc("thing").
		Field("n", dsl.Int()).
		Owner("n").
		PreOwner(exprhook.MustDerive("bad", `n + missing()`)).
		MustBuild()
	doc := s.New()
	if err := doc.Set("n", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := doc.ForOwner(); err == nil {
		t.Fatalf("expected run-time evaluation failure to abort the projection")
	}
}

func TestWhen_GatesWrappedHook(t *testing.T) {
	s := dsl.Doc("profile").
		Field("firstname", dsl.String()).
		Field("age", dsl.Int()).
		Public("firstname", "age").
		PrePublic(exprhook.MustWhen(`age < 18`, dico.DropKeys("firstname"))).
		MustBuild()

	minor, _ := s.NewFrom(map[string]any{"firstname": "Kid", "age": 12})
	view, err := minor.ForPublic()
	if err != nil {
		t.Fatalf("ForPublic: %v", err)
	}
	if _, present := view["firstname"]; present {
		t.Fatalf("predicate true: wrapped hook must run, got %v", view)
	}

	adult, _ := s.NewFrom(map[string]any{"firstname": "Ada", "age": 36})
	view, err = adult.ForPublic()
	if err != nil {
		t.Fatalf("ForPublic: %v", err)
	}
	if view["firstname"] != "Ada" {
		t.Fatalf("predicate false: projection must pass through, got %v", view)
	}
}

func TestWhen_NonBoolPredicateFails(t *testing.T) {
	s := dsl.Doc("thing").
		Field("n", dsl.Int()).
		Owner("n").
		PreOwner(exprhook.MustWhen(`n`, dico.DropKeys("n"))).
		MustBuild()
	doc := s.New()
	if err := doc.Set("n", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := doc.ForOwner(); err == nil {
		t.Fatalf("expected non-bool predicate to abort the projection")
	}
}
