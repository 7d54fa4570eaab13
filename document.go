package dico

// Document is one record instance of a Schema. It holds values only for
// fields actually set; absence is distinct from explicitly-set-to-default.
// A Document is not safe for concurrent mutation; use one per logical task.
type Document struct {
	schema   *Schema
	data     map[string]any
	dirty    []string
	dirtySet map[string]struct{}
	applied  map[string]struct{} // values materialized from a field default
	parents  []parentRef
}

// parentRef is the non-owning back-reference from an embedded document to a
// document currently holding it. It exists only so child mutations can mark
// the holding field dirty; it never extends ownership or lifetime.
type parentRef struct {
	doc   *Document
	field string
}

// New returns an empty Document of the schema.
func (s *Schema) New() *Document {
	return &Document{
		schema:   s,
		data:     map[string]any{},
		dirtySet: map[string]struct{}{},
		applied:  map[string]struct{}{},
	}
}

// NewFrom constructs a Document from a string-keyed input mapping. Keys may
// be canonical field names or declared aliases; any other key fails with
// UnknownFieldError. Raw maps given for embedded fields (and raw maps inside
// list-of-embedded fields) cascade into nested Documents immediately,
// recursively. Values arriving here are baseline: they are never dirty, even
// when they differ from a field default.
func (s *Schema) NewFrom(in map[string]any) (*Document, error) {
	d := s.New()
	for key, value := range in {
		name, ok := s.Resolve(key)
		if !ok {
			return nil, &UnknownFieldError{Schema: s.name, Field: key}
		}
		stored, err := d.resolveAssign(s.byName[name], value)
		if err != nil {
			return nil, err
		}
		d.data[name] = stored
		d.attachChildren(name)
	}
	return d, nil
}

// Schema returns the declaring schema.
func (d *Document) Schema() *Schema { return d.schema }

// Set assigns a value to a canonical field name and marks the field dirty.
// A name not declared on the schema fails immediately with
// UnknownFieldError; a value of the wrong shape is stored as-is and only
// surfaces when validation runs.
func (d *Document) Set(name string, value any) error {
	f, ok := d.schema.byName[name]
	if !ok {
		return &UnknownFieldError{Schema: d.schema.name, Field: name}
	}
	stored, err := d.resolveAssign(f, value)
	if err != nil {
		return err
	}
	d.detachChildren(name)
	d.data[name] = stored
	d.attachChildren(name)
	delete(d.applied, name)
	d.markDirty(name)
	return nil
}

// Get returns the current value of a canonical field name. When the field is
// unset and declares a default, the default is resolved lazily, stored on
// the instance, and returned; such a value counts as present for validation
// but stays out of the changes view. An unset field with no default yields
// nil.
func (d *Document) Get(name string) (any, error) {
	f, ok := d.schema.byName[name]
	if !ok {
		return nil, &UnknownFieldError{Schema: d.schema.name, Field: name}
	}
	if v, ok := d.data[name]; ok {
		return v, nil
	}
	if f.HasDefault() {
		v := f.ResolveDefault()
		if v != nil {
			d.data[name] = v
			d.applied[name] = struct{}{}
		}
		return v, nil
	}
	return nil, nil
}

// IsSet reports whether the field holds an explicitly assigned value,
// as opposed to being unset or carrying a materialized default.
func (d *Document) IsSet(name string) bool {
	if _, ok := d.data[name]; !ok {
		return false
	}
	_, fromDefault := d.applied[name]
	return !fromDefault
}

// ModifiedFields returns the names mutated since construction (or since the
// last Commit), in mutation order.
func (d *Document) ModifiedFields() []string {
	return append([]string(nil), d.dirty...)
}

// Commit clears the dirty set without altering values. Call it after a
// successful persistence write.
func (d *Document) Commit() {
	d.dirty = d.dirty[:0]
	d.dirtySet = map[string]struct{}{}
}

func (d *Document) isDirty(name string) bool {
	_, ok := d.dirtySet[name]
	return ok
}

func (d *Document) markDirty(name string) {
	if _, seen := d.dirtySet[name]; !seen {
		d.dirtySet[name] = struct{}{}
		d.dirty = append(d.dirty, name)
	}
	for _, p := range d.parents {
		p.doc.markDirty(p.field)
	}
}

// resolveAssign cascades raw nested values for embedded and list fields.
// Anything that does not cascade is stored untouched; shape mismatches are
// validation's business, not assignment's. Parent back-references are wired
// afterwards, by attachChildren, once the value is in place.
func (d *Document) resolveAssign(f *Field, value any) (any, error) {
	switch f.kind {
	case KindEmbedded:
		if m, ok := value.(map[string]any); ok {
			return f.embedded.NewFrom(m)
		}
		return value, nil
	case KindList:
		items, ok := asSlice(value)
		if !ok {
			return value, nil
		}
		if f.item != nil && f.item.kind == KindEmbedded {
			out := make([]any, 0, len(items))
			for _, it := range items {
				if m, ok := it.(map[string]any); ok {
					child, err := f.item.embedded.NewFrom(m)
					if err != nil {
						return nil, err
					}
					out = append(out, child)
					continue
				}
				out = append(out, it)
			}
			return out, nil
		}
		return items, nil
	default:
		return value, nil
	}
}

func (d *Document) attachParent(parent *Document, field string) {
	for _, p := range d.parents {
		if p.doc == parent && p.field == field {
			return
		}
	}
	d.parents = append(d.parents, parentRef{doc: parent, field: field})
}

func (d *Document) detachParent(parent *Document, field string) {
	for i, p := range d.parents {
		if p.doc == parent && p.field == field {
			d.parents = append(d.parents[:i], d.parents[i+1:]...)
			return
		}
	}
}

// attachChildren wires the back-references of documents stored under the
// field so their mutations mark it dirty here.
func (d *Document) attachChildren(name string) {
	switch v := d.data[name].(type) {
	case *Document:
		v.attachParent(d, name)
	case []any:
		for _, it := range v {
			if child, ok := it.(*Document); ok {
				child.attachParent(d, name)
			}
		}
	}
}

// detachChildren drops the back-references of documents currently stored
// under the field, ahead of the value being replaced.
func (d *Document) detachChildren(name string) {
	switch v := d.data[name].(type) {
	case *Document:
		v.detachParent(d, name)
	case []any:
		for _, it := range v {
			if child, ok := it.(*Document); ok {
				child.detachParent(d, name)
			}
		}
	}
}
