package dsl

import (
	dico "github.com/dico-go/dico"
	"github.com/google/uuid"
)

// FieldType carries one field's constraints before the field is bound to a
// name by Builder.Field.
type FieldType interface {
	fieldDef() dico.FieldDef
}

// ScalarType covers the kinds without extra bounds: bool, integer, float,
// date-time, ip-address.
type ScalarType struct {
	d dico.FieldDef
}

func (t *ScalarType) fieldDef() dico.FieldDef { return t.d }

// Choices restricts the field to an enumerated set of values, checked during
// validation.
func (t *ScalarType) Choices(vs ...any) *ScalarType {
	t.d.Choices = append(t.d.Choices, vs...)
	return t
}

func Bool() *ScalarType     { return &ScalarType{d: dico.FieldDef{Kind: dico.KindBool}} }
func Int() *ScalarType      { return &ScalarType{d: dico.FieldDef{Kind: dico.KindInt}} }
func Float() *ScalarType    { return &ScalarType{d: dico.FieldDef{Kind: dico.KindFloat}} }
func DateTime() *ScalarType { return &ScalarType{d: dico.FieldDef{Kind: dico.KindDateTime}} }
func IP() *ScalarType       { return &ScalarType{d: dico.FieldDef{Kind: dico.KindIP}} }

// StringType covers string-shaped kinds and chains length, pattern and
// choice bounds. Patterns compile once, at Build.
type StringType struct {
	d dico.FieldDef
}

func (t *StringType) fieldDef() dico.FieldDef { return t.d }

// Min sets the minimum length.
func (t *StringType) Min(n int) *StringType { t.d.MinLen = n; return t }

// Max sets the maximum length.
func (t *StringType) Max(n int) *StringType { t.d.MaxLen = n; return t }

// Pattern constrains the value to a regular expression. The empty string is
// accepted on optional fields even when it does not match.
func (t *StringType) Pattern(expr string) *StringType { t.d.Pattern = expr; return t }

// Choices restricts the field to an enumerated set of values.
func (t *StringType) Choices(vs ...any) *StringType {
	t.d.Choices = append(t.d.Choices, vs...)
	return t
}

func String() *StringType { return &StringType{d: dico.FieldDef{Kind: dico.KindString}} }

// URL is a string field constrained by the shared URL pattern.
func URL() *StringType { return &StringType{d: dico.FieldDef{Kind: dico.KindURL}} }

// Email is a string field constrained by the shared email pattern.
func Email() *StringType { return &StringType{d: dico.FieldDef{Kind: dico.KindEmail}} }

// IDType is the identifier kind: RFC 4122 UUIDs, as uuid.UUID or string.
type IDType struct {
	d dico.FieldDef
}

func (t *IDType) fieldDef() dico.FieldDef { return t.d }

// AutoDefault installs uuid.NewString as the field's lazy default provider,
// so every validated document gets an identifier without the caller minting
// one.
func (t *IDType) AutoDefault() *IDType {
	t.d.DefaultFn = func() any { return uuid.NewString() }
	return t
}

func ID() *IDType { return &IDType{d: dico.FieldDef{Kind: dico.KindIdentifier}} }

// ListType holds a sequence checked element-wise against its item type.
// Length bounds apply at validation time only, never at assignment.
type ListType struct {
	d    dico.FieldDef
	item FieldType
}

func (t *ListType) fieldDef() dico.FieldDef {
	d := t.d
	it := t.item.fieldDef()
	d.Item = &it
	return d
}

// Min sets the minimum element count.
func (t *ListType) Min(n int) *ListType { t.d.MinLen = n; return t }

// Max sets the maximum element count.
func (t *ListType) Max(n int) *ListType { t.d.MaxLen = n; return t }

// List declares a list field over an item type. The item's constraints are
// read when the list is bound to a field, so refinements chained on the item
// after List still take effect.
func List(item FieldType) *ListType {
	return &ListType{d: dico.FieldDef{Kind: dico.KindList}, item: item}
}

// EmbeddedType nests another schema's documents into a field. Raw maps
// assigned to the field cascade into Documents of the nested schema.
type EmbeddedType struct {
	d dico.FieldDef
}

func (t *EmbeddedType) fieldDef() dico.FieldDef { return t.d }

// Embedded declares an embedded-document field of the given schema.
func Embedded(s *dico.Schema) *EmbeddedType {
	return &EmbeddedType{d: dico.FieldDef{Kind: dico.KindEmbedded, Embedded: s}}
}
