package dico

import (
	"net"
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Kind tags the value shape a field accepts.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindString
	KindInt
	KindFloat
	KindIP
	KindURL
	KindEmail
	KindDateTime
	KindIdentifier
	KindList
	KindEmbedded
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindIP:
		return "ip-address"
	case KindURL:
		return "url"
	case KindEmail:
		return "email"
	case KindDateTime:
		return "date-time"
	case KindIdentifier:
		return "identifier"
	case KindList:
		return "list"
	case KindEmbedded:
		return "embedded"
	default:
		return "invalid"
	}
}

// FieldDef is the declaration form consumed by NewSchema. The fluent builder
// in dsl/ and the YAML importer in yamlschema/ both lower to it.
//
// MinLen/MaxLen of 0 mean "unset". Pattern is a regular expression source
// compiled exactly once, by NewSchema; url and email kinds carry their shared
// package-level patterns and ignore Pattern.
type FieldDef struct {
	Name      string
	Kind      Kind
	Required  bool
	Default   any
	DefaultFn func() any
	MinLen    int
	MaxLen    int
	Pattern   string
	Aliases   []string
	Choices   []any
	Item      *FieldDef // list element declaration
	Embedded  *Schema   // nested schema for embedded fields
}

// Field is one immutable compiled constraint entry of a Schema.
type Field struct {
	name     string
	kind     Kind
	required bool
	def      any
	defFn    func() any
	minLen   int
	maxLen   int
	pattern  *regexp.Regexp
	aliases  []string
	choices  []any
	item     *Field
	embedded *Schema
}

func (f *Field) Name() string   { return f.name }
func (f *Field) Kind() Kind     { return f.kind }
func (f *Field) Required() bool { return f.required }

func (f *Field) Aliases() []string {
	out := make([]string, len(f.aliases))
	copy(out, f.aliases)
	return out
}

// Item returns the element spec of a list field, nil otherwise.
func (f *Field) Item() *Field { return f.item }

// Embedded returns the nested schema of an embedded field, nil otherwise.
func (f *Field) Embedded() *Schema { return f.embedded }

// HasDefault reports whether the field declares a default value or provider.
func (f *Field) HasDefault() bool { return f.defFn != nil || f.def != nil }

// ResolveDefault evaluates the default provider, or returns the literal
// default. Providers run here, lazily, never at declaration time.
func (f *Field) ResolveDefault() any {
	if f.defFn != nil {
		return f.defFn()
	}
	return f.def
}

// Check tests value shape against the field: kind conformance plus
// length/pattern/choice bounds. It deliberately ignores required-ness, which
// is a presence rule owned by validation. For embedded fields it tests only
// that the value is a Document of the nested schema; for lists it bounds the
// length and checks each element's shape. Recursing into nested documents
// with the active validation mode is the validation engine's job.
func (f *Field) Check(value any) bool {
	if value == nil {
		return false
	}
	if len(f.choices) > 0 && !containsValue(f.choices, value) {
		return false
	}
	switch f.kind {
	case KindBool:
		_, ok := value.(bool)
		return ok
	case KindString, KindURL, KindEmail:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return f.checkString(s)
	case KindInt:
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return true
		}
		return false
	case KindFloat:
		switch value.(type) {
		case float32, float64, int, int8, int16, int32, int64:
			return true
		}
		return false
	case KindIP:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return net.ParseIP(s) != nil
	case KindDateTime:
		_, ok := value.(time.Time)
		return ok
	case KindIdentifier:
		switch v := value.(type) {
		case uuid.UUID:
			return true
		case string:
			_, err := uuid.Parse(v)
			return err == nil
		}
		return false
	case KindList:
		items, ok := asSlice(value)
		if !ok {
			return false
		}
		if !f.checkLength(len(items)) {
			return false
		}
		if f.item != nil {
			for _, it := range items {
				if !f.item.Check(it) {
					return false
				}
			}
		}
		return true
	case KindEmbedded:
		d, ok := value.(*Document)
		return ok && d.schema == f.embedded
	default:
		return false
	}
}

func (f *Field) checkString(s string) bool {
	if f.minLen > 0 && len(s) < f.minLen {
		return false
	}
	if f.maxLen > 0 && len(s) > f.maxLen {
		return false
	}
	if f.pattern != nil && !f.pattern.MatchString(s) {
		// The empty string is an accepted degenerate value for optional
		// pattern-constrained fields.
		if s == "" && !f.required {
			return true
		}
		return false
	}
	return true
}

func (f *Field) checkLength(n int) bool {
	if f.minLen > 0 && n < f.minLen {
		return false
	}
	if f.maxLen > 0 && n > f.maxLen {
		return false
	}
	return true
}

func containsValue(set []any, v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !rv.Comparable() {
		return false
	}
	for _, c := range set {
		if c == v || numericEqual(c, v) {
			return true
		}
	}
	return false
}

// numericEqual compares numbers by value across Go's numeric types. Choices
// are usually declared as int while JSON decoding produces int64 or float64;
// strict interface equality would never match those.
func numericEqual(a, b any) bool {
	ai, aok := asInt64(a)
	bi, bok := asInt64(b)
	if aok && bok {
		return ai == bi
	}
	af, aok := asFloat64(a)
	bf, bok := asFloat64(b)
	return aok && bok && af == bf
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// asSlice views any slice or array value as []any. []any passes through
// without copying.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func compileField(def FieldDef, schemaName string) (*Field, error) {
	f := &Field{
		name:     def.Name,
		kind:     def.Kind,
		required: def.Required,
		def:      def.Default,
		defFn:    def.DefaultFn,
		minLen:   def.MinLen,
		maxLen:   def.MaxLen,
		aliases:  append([]string(nil), def.Aliases...),
		choices:  append([]any(nil), def.Choices...),
		embedded: def.Embedded,
	}
	switch def.Kind {
	case KindURL:
		f.pattern = urlPattern
	case KindEmail:
		f.pattern = emailPattern
	default:
		if def.Pattern != "" {
			re, err := regexp.Compile(def.Pattern)
			if err != nil {
				return nil, &SchemaError{Schema: schemaName, Reason: "field " + def.Name + ": invalid pattern: " + err.Error()}
			}
			f.pattern = re
		}
	}
	if def.Kind == KindEmbedded && def.Embedded == nil {
		return nil, &SchemaError{Schema: schemaName, Reason: "field " + def.Name + ": embedded field needs a nested schema"}
	}
	if def.Kind == KindList {
		if def.Item == nil {
			return nil, &SchemaError{Schema: schemaName, Reason: "field " + def.Name + ": list field needs an item spec"}
		}
		item, err := compileField(*def.Item, schemaName)
		if err != nil {
			return nil, err
		}
		f.item = item
	}
	return f, nil
}
