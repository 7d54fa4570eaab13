package dico

// Validate runs the full check: every required field must hold an explicit
// value or a resolvable default, and every field that does hold a value must
// pass its specification. Embedded documents and list-of-embedded elements
// must pass Validate themselves. The result is a plain boolean; per-field
// detail is deliberately out of scope, callers needing it re-run
// Field.Check themselves.
//
// The empty string counts as present for a required string field.
//
// TODO: offer an itemized result listing the failing fields.
func (d *Document) Validate() bool { return d.validate(false) }

// ValidatePartial runs the same shape checks but skips the required rule
// entirely: a document with only some fields populated is partially valid as
// long as whatever is populated conforms. Embedded documents are held to
// ValidatePartial as well.
func (d *Document) ValidatePartial() bool { return d.validate(true) }

func (d *Document) validate(partial bool) bool {
	for _, f := range d.schema.fields {
		value, ok := d.data[f.name]
		// A field explicitly cleared since construction stays cleared; its
		// default must not overwrite the mutation.
		if (!ok || value == nil) && f.HasDefault() && !d.isDirty(f.name) {
			if v := f.ResolveDefault(); v != nil {
				d.data[f.name] = v
				d.applied[f.name] = struct{}{}
				value, ok = v, true
			}
		}
		if !ok || value == nil {
			if !partial && f.required {
				return false
			}
			continue
		}
		if !d.checkValue(f, value, partial) {
			return false
		}
	}
	return true
}

// checkValue extends Field.Check with mode-aware recursion into nested
// documents.
func (d *Document) checkValue(f *Field, value any, partial bool) bool {
	switch f.kind {
	case KindEmbedded:
		child, ok := value.(*Document)
		if !ok || child.schema != f.embedded {
			return false
		}
		return child.validate(partial)
	case KindList:
		items, ok := asSlice(value)
		if !ok || !f.checkLength(len(items)) {
			return false
		}
		if f.item != nil {
			for _, it := range items {
				if !d.checkValue(f.item, it, partial) {
					return false
				}
			}
		}
		return true
	default:
		return f.Check(value)
	}
}
