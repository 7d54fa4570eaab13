package dsl

import (
	dico "github.com/dico-go/dico"
)

// Builder accumulates one schema declaration.
type Builder struct {
	def dico.SchemaDef
}

// Doc starts the declaration of a record type.
func Doc(name string) *Builder {
	return &Builder{def: dico.SchemaDef{Name: name}}
}

// Extend seeds the declaration with a parent schema. Parent fields keep
// their declared order; redeclaring a field name overrides it in place, new
// fields append.
func (b *Builder) Extend(parent *dico.Schema) *Builder {
	b.def.Extends = parent
	return b
}

// Field registers a field with its type and returns a step for per-field
// refinements (Required, Alias, Default).
func (b *Builder) Field(name string, t FieldType) *FieldStep {
	fd := t.fieldDef()
	fd.Name = name
	b.def.Fields = append(b.def.Fields, fd)
	return &FieldStep{b: b, idx: len(b.def.Fields) - 1}
}

// Owner declares the owner visibility list, in projection order. Names may
// be fields or derived values.
func (b *Builder) Owner(names ...string) *Builder {
	b.def.Owner = append(b.def.Owner, names...)
	return b
}

// Public declares the public visibility list, in projection order.
func (b *Builder) Public(names ...string) *Builder {
	b.def.Public = append(b.def.Public, names...)
	return b
}

// Derived registers a computed value usable in visibility lists. It is
// evaluated at projection time only; it is never stored and never dirty.
func (b *Builder) Derived(name string, fn dico.DerivedFunc) *Builder {
	if b.def.Derived == nil {
		b.def.Derived = map[string]dico.DerivedFunc{}
	}
	b.def.Derived[name] = fn
	return b
}

// PreSave appends hooks to the save pipeline, run in declaration order.
func (b *Builder) PreSave(hooks ...dico.Hook) *Builder {
	b.def.PreSave = append(b.def.PreSave, hooks...)
	return b
}

// PreOwner appends hooks to the owner pipeline.
func (b *Builder) PreOwner(hooks ...dico.Hook) *Builder {
	b.def.PreOwner = append(b.def.PreOwner, hooks...)
	return b
}

// PrePublic appends hooks to the public pipeline.
func (b *Builder) PrePublic(hooks ...dico.Hook) *Builder {
	b.def.PrePublic = append(b.def.PrePublic, hooks...)
	return b
}

// Build compiles the declaration into an immutable schema.
func (b *Builder) Build() (*dico.Schema, error) {
	return dico.NewSchema(b.def)
}

// MustBuild is Build panicking on declaration errors.
func (b *Builder) MustBuild() *dico.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// FieldStep refines the most recently declared field while keeping the
// chain open: builder-level methods are available directly on the step.
type FieldStep struct {
	b   *Builder
	idx int
}

// Required marks the field as required.
func (f *FieldStep) Required() *FieldStep {
	f.b.def.Fields[f.idx].Required = true
	return f
}

// Alias declares alternate construction keys for the field. Aliases affect
// ingestion only; they never rename projection output.
func (f *FieldStep) Alias(names ...string) *FieldStep {
	fd := &f.b.def.Fields[f.idx]
	fd.Aliases = append(fd.Aliases, names...)
	return f
}

// Default sets a literal default value.
func (f *FieldStep) Default(v any) *FieldStep {
	f.b.def.Fields[f.idx].Default = v
	return f
}

// DefaultFn sets a lazy default provider, evaluated at access/validation
// time, never at declaration time.
func (f *FieldStep) DefaultFn(fn func() any) *FieldStep {
	f.b.def.Fields[f.idx].DefaultFn = fn
	return f
}

// ---- chain continuations ----

func (f *FieldStep) Field(name string, t FieldType) *FieldStep { return f.b.Field(name, t) }
func (f *FieldStep) Owner(names ...string) *Builder            { return f.b.Owner(names...) }
func (f *FieldStep) Public(names ...string) *Builder           { return f.b.Public(names...) }
func (f *FieldStep) Derived(name string, fn dico.DerivedFunc) *Builder {
	return f.b.Derived(name, fn)
}
func (f *FieldStep) PreSave(hooks ...dico.Hook) *Builder   { return f.b.PreSave(hooks...) }
func (f *FieldStep) PreOwner(hooks ...dico.Hook) *Builder  { return f.b.PreOwner(hooks...) }
func (f *FieldStep) PrePublic(hooks ...dico.Hook) *Builder { return f.b.PrePublic(hooks...) }
func (f *FieldStep) Build() (*dico.Schema, error)          { return f.b.Build() }
func (f *FieldStep) MustBuild() *dico.Schema               { return f.b.MustBuild() }
