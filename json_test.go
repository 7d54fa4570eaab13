package dico_test

import (
	"testing"
	"time"

	gojson "github.com/goccy/go-json"

	dico "github.com/dico-go/dico"
	"github.com/dico-go/dico/dsl"
)

func TestFromJSON_AliasNumbersAndDates(t *testing.T) {
	s := dsl.Doc("article").
		Field("id", dsl.Int()).Alias("_id").
		Field("title", dsl.String()).Required().
		Field("score", dsl.Float()).
		Field("created", dsl.DateTime()).
		MustBuild()

	doc, err := dico.FromJSON(s, []byte(`{
		"_id": 4,
		"title": "hello",
		"score": 0.25,
		"created": "2020-05-01T10:00:00Z"
	}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if v, _ := doc.Get("id"); v != int64(4) {
		t.Fatalf("expected id int64(4), got %#v", v)
	}
	if v, _ := doc.Get("score"); v != 0.25 {
		t.Fatalf("expected score 0.25, got %#v", v)
	}
	created, _ := doc.Get("created")
	ts, ok := created.(time.Time)
	if !ok || !ts.Equal(time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected parsed RFC3339 time, got %#v", created)
	}
	if !doc.Validate() {
		t.Fatalf("decoded document must validate")
	}
}

func TestFromJSON_UnknownKeyRejected(t *testing.T) {
	s := dsl.Doc("thing").
		Field("id", dsl.Int()).
		MustBuild()
	_, err := dico.FromJSON(s, []byte(`{"id": 1, "bogus": true}`))
	if !dico.IsUnknownField(err) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
}

func TestFromJSON_IntChoicesMatchDecodedNumbers(t *testing.T) {
	s := dsl.Doc("task").
		Field("state", dsl.Int().Choices(1, 2, 3)).
		Field("weight", dsl.Float().Choices(0.5, 1.0)).
		MustBuild()

	doc, err := dico.FromJSON(s, []byte(`{"state": 2, "weight": 0.5}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if !doc.Validate() {
		t.Fatalf("decoded values matching declared choices must validate")
	}

	bad, err := dico.FromJSON(s, []byte(`{"state": 9}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if bad.Validate() {
		t.Fatalf("a value outside the declared choices must not validate")
	}
}

func TestFromJSON_EmbeddedCascade(t *testing.T) {
	address := dsl.Doc("address").
		Field("city", dsl.String()).Required().
		MustBuild()
	person := dsl.Doc("person").
		Field("name", dsl.String()).
		Field("home", dsl.Embedded(address)).
		MustBuild()

	doc, err := dico.FromJSON(person, []byte(`{"name": "Ada", "home": {"city": "Paris"}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	home, _ := doc.Get("home")
	if _, ok := home.(*dico.Document); !ok {
		t.Fatalf("expected cascaded nested document, got %T", home)
	}
	if !doc.Validate() {
		t.Fatalf("decoded document must validate")
	}
}

func TestMarshalView_SaveRoundTrip(t *testing.T) {
	s := dsl.Doc("profile").
		Field("id", dsl.Int()).Required().
		Field("firstname", dsl.String()).
		Public("firstname").
		MustBuild()
	doc, err := s.NewFrom(map[string]any{"id": 3, "firstname": "Bob"})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}

	raw, err := dico.MarshalView(doc, dico.ViewSave)
	if err != nil {
		t.Fatalf("MarshalView: %v", err)
	}
	var back map[string]any
	if err := gojson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back["firstname"] != "Bob" || back["id"] != float64(3) {
		t.Fatalf("unexpected save JSON: %v", back)
	}

	public, err := dico.MarshalView(doc, dico.ViewPublic)
	if err != nil {
		t.Fatalf("MarshalView public: %v", err)
	}
	var pub map[string]any
	if err := gojson.Unmarshal(public, &pub); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(pub) != 1 || pub["firstname"] != "Bob" {
		t.Fatalf("unexpected public JSON: %v", pub)
	}
}

func TestMarshalView_SaveGatePropagates(t *testing.T) {
	s := dsl.Doc("profile").
		Field("id", dsl.Int()).Required().
		MustBuild()
	doc := s.New()
	if _, err := dico.MarshalView(doc, dico.ViewSave); !dico.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
