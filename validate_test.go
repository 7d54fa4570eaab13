package dico_test

import (
	"testing"
	"time"

	dico "github.com/dico-go/dico"
	"github.com/dico-go/dico/dsl"
)

func newArticleSchema(t *testing.T) *dico.Schema {
	t.Helper()
	return dsl.Doc("article").
		Field("id", dsl.Int()).
		Field("title", dsl.String().Max(40)).Required().
		Field("body", dsl.String().Max(4096)).
		Field("created", dsl.DateTime()).Required().DefaultFn(func() any { return time.Now().UTC() }).
		MustBuild()
}

func TestValidate_PartialPatchWorkflow(t *testing.T) {
	s := newArticleSchema(t)
	doc, err := s.NewFrom(map[string]any{"body": "only the body"})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if doc.Validate() {
		t.Fatalf("full validation must fail while required title is missing")
	}
	if !doc.ValidatePartial() {
		t.Fatalf("partial validation must ignore missing required fields")
	}
	if err := doc.Set("title", "now with a title"); err != nil {
		t.Fatalf("Set(title): %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("full validation must pass once title is set (created has a default)")
	}
}

func TestValidate_RequiredWithDefaultCountsAsPresent(t *testing.T) {
	s := newArticleSchema(t)
	doc, err := s.NewFrom(map[string]any{"title": "t"})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("required created field has a default provider; validation must pass")
	}
}

func TestValidate_EmptyStringSatisfiesRequiredString(t *testing.T) {
	s := dsl.Doc("thing").
		Field("label", dsl.String()).Required().
		MustBuild()
	doc, err := s.NewFrom(map[string]any{"label": ""})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("empty string is a present value for a required string field")
	}
}

func TestValidate_PatternRelaxedForEmptyOptionalString(t *testing.T) {
	s := dsl.Doc("thing").
		Field("code", dsl.String().Pattern("^[A-Z]{3}$")).
		Field("strict", dsl.String().Pattern("^[A-Z]{3}$")).Required().
		MustBuild()

	doc := s.New()
	if err := doc.Set("code", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !doc.ValidatePartial() {
		t.Fatalf("empty optional pattern field must pass")
	}

	other := s.New()
	if err := other.Set("strict", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if other.ValidatePartial() {
		t.Fatalf("empty required pattern field must fail the pattern")
	}
}

func TestValidate_StringBounds(t *testing.T) {
	s := dsl.Doc("thing").
		Field("name", dsl.String().Min(2).Max(4)).
		MustBuild()
	for _, tc := range []struct {
		value string
		want  bool
	}{
		{"x", false},
		{"xy", true},
		{"wxyz", true},
		{"vwxyz", false},
	} {
		doc := s.New()
		if err := doc.Set("name", tc.value); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := doc.ValidatePartial(); got != tc.want {
			t.Fatalf("value %q: expected %v, got %v", tc.value, tc.want, got)
		}
	}
}

func TestValidate_ListBoundsAtValidationTimeOnly(t *testing.T) {
	s := dsl.Doc("bag").
		Field("nums", dsl.List(dsl.Int()).Min(2).Max(4)).
		MustBuild()
	for _, tc := range []struct {
		items []any
		want  bool
	}{
		{[]any{1}, false},
		{[]any{1, 2}, true},
		{[]any{1, 2, 3, 4}, true},
		{[]any{1, 2, 3, 4, 5}, false},
	} {
		doc := s.New()
		// out-of-bounds lists are assignable and inspectable
		if err := doc.Set("nums", tc.items); err != nil {
			t.Fatalf("assignment must not enforce bounds: %v", err)
		}
		if v, _ := doc.Get("nums"); len(v.([]any)) != len(tc.items) {
			t.Fatalf("stored list must be readable before validation")
		}
		if got := doc.Validate(); got != tc.want {
			t.Fatalf("%d items: expected %v, got %v", len(tc.items), tc.want, got)
		}
	}
}

func TestValidate_ListItemShape(t *testing.T) {
	s := dsl.Doc("bag").
		Field("nums", dsl.List(dsl.Int())).
		MustBuild()
	doc := s.New()
	if err := doc.Set("nums", []any{1, "two", 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if doc.Validate() {
		t.Fatalf("a non-integer element must fail validation")
	}
}

func TestValidate_EmbeddedRecursesWithSameMode(t *testing.T) {
	address := dsl.Doc("address").
		Field("city", dsl.String()).Required().
		Field("zipcode", dsl.String()).
		MustBuild()
	person := dsl.Doc("person").
		Field("name", dsl.String()).
		Field("home", dsl.Embedded(address)).
		MustBuild()

	doc, err := person.NewFrom(map[string]any{
		"name": "Ada",
		"home": map[string]any{"zipcode": "75001"},
	})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if doc.Validate() {
		t.Fatalf("full validation must cascade into the incomplete embedded document")
	}
	if !doc.ValidatePartial() {
		t.Fatalf("partial validation must cascade partially too")
	}
}

func TestValidate_EmbeddedListCascadeCreatesDocuments(t *testing.T) {
	address := dsl.Doc("address").
		Field("city", dsl.String()).Required().
		MustBuild()
	person := dsl.Doc("person").
		Field("addresses", dsl.List(dsl.Embedded(address))).
		MustBuild()

	doc, err := person.NewFrom(map[string]any{
		"addresses": []any{
			map[string]any{"city": "Paris"},
			map[string]any{},
		},
	})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	raw, _ := doc.Get("addresses")
	items := raw.([]any)
	if len(items) != 2 {
		t.Fatalf("expected two nested documents, got %d", len(items))
	}
	first, ok := items[0].(*dico.Document)
	if !ok {
		t.Fatalf("expected *dico.Document element, got %T", items[0])
	}
	second := items[1].(*dico.Document)
	if !first.Validate() {
		t.Fatalf("first nested document is complete and must validate")
	}
	if second.Validate() {
		t.Fatalf("second nested document misses its required city")
	}
	if doc.Validate() {
		t.Fatalf("parent validation must fail through the invalid element")
	}
}

func TestValidate_WrongTypeInEmbeddedFieldSurfacesLate(t *testing.T) {
	address := dsl.Doc("address").
		Field("city", dsl.String()).
		MustBuild()
	person := dsl.Doc("person").
		Field("home", dsl.Embedded(address)).
		MustBuild()
	doc := person.New()
	if err := doc.Set("home", "not an address"); err != nil {
		t.Fatalf("incompatible value is stored as-is, got %v", err)
	}
	if doc.ValidatePartial() {
		t.Fatalf("the mismatch must surface at validation")
	}
}

func TestValidate_Choices(t *testing.T) {
	s := dsl.Doc("thing").
		Field("state", dsl.String().Choices("new", "done")).
		MustBuild()
	doc := s.New()
	if err := doc.Set("state", "done"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("declared choice must pass")
	}
	if err := doc.Set("state", "stuck"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if doc.Validate() {
		t.Fatalf("undeclared choice must fail")
	}
}

func TestValidate_KindCatalog(t *testing.T) {
	s := dsl.Doc("kinds").
		Field("ok", dsl.Bool()).
		Field("count", dsl.Int()).
		Field("ratio", dsl.Float()).
		Field("addr", dsl.IP()).
		Field("site", dsl.URL()).
		Field("mail", dsl.Email()).
		Field("when", dsl.DateTime()).
		Field("ref", dsl.ID()).
		MustBuild()

	good := map[string]any{
		"ok":    true,
		"count": 12,
		"ratio": 0.5,
		"addr":  "2001:db8::1",
		"site":  "https://example.com/x",
		"mail":  "bob@example.com",
		"when":  time.Now(),
		"ref":   "123e4567-e89b-12d3-a456-426614174000",
	}
	doc, err := s.NewFrom(good)
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("catalog of well-shaped values must validate")
	}

	bad := map[string]any{
		"ok":   "yes",
		"addr": "999.999.1.1",
		"site": "nota url",
		"mail": "not-an-email",
		"ref":  "not-a-uuid",
	}
	for name, value := range bad {
		doc := s.New()
		if err := doc.Set(name, value); err != nil {
			t.Fatalf("Set(%s): %v", name, err)
		}
		if doc.ValidatePartial() {
			t.Fatalf("field %s with value %v must fail", name, value)
		}
	}
}
