package dico

import "fmt"

// View names one of the four serialized projections of a Document.
type View int

const (
	ViewSave View = iota
	ViewOwner
	ViewPublic
	ViewChanges
)

func (v View) String() string {
	switch v {
	case ViewSave:
		return "save"
	case ViewOwner:
		return "owner"
	case ViewPublic:
		return "public"
	case ViewChanges:
		return "changes"
	default:
		return "unknown"
	}
}

// Project builds the named view of the document.
func (d *Document) Project(view View) (map[string]any, error) {
	switch view {
	case ViewSave:
		return d.ForSave()
	case ViewOwner:
		return d.ForOwner()
	case ViewPublic:
		return d.ForPublic()
	case ViewChanges:
		return d.Changes(), nil
	default:
		return nil, fmt.Errorf("dico: unknown view %d", int(view))
	}
}

// ForSave projects every populated field in schema declaration order,
// recursing into embedded documents via their own save view, then runs the
// pre-save pipeline. It fails with ValidationError when Validate is false
// and produces no output in that case.
func (d *Document) ForSave() (map[string]any, error) {
	if !d.Validate() {
		return nil, &ValidationError{Schema: d.schema.name}
	}
	out := make(map[string]any, len(d.schema.fields))
	for _, f := range d.schema.fields {
		value, ok := d.data[f.name]
		if !ok || value == nil {
			continue
		}
		pv, err := projectValue(f, value, ViewSave)
		if err != nil {
			return nil, err
		}
		out[f.name] = pv
	}
	return applyHooks(d.schema.preSave, out)
}

// ForOwner projects exactly the names of the owner visibility list, in list
// order, then runs the pre-owner pipeline. There is no validation gate.
func (d *Document) ForOwner() (map[string]any, error) {
	return d.forVisibility(d.schema.owner, ViewOwner, d.schema.preOwner)
}

// ForPublic projects exactly the names of the public visibility list, in
// list order, then runs the pre-public pipeline. There is no validation
// gate.
func (d *Document) ForPublic() (map[string]any, error) {
	return d.forVisibility(d.schema.public, ViewPublic, d.schema.prePublic)
}

func (d *Document) forVisibility(names []string, view View, hooks []Hook) (map[string]any, error) {
	out := make(map[string]any, len(names))
	for _, n := range names {
		if fn, ok := d.schema.derived[n]; ok {
			out[n] = fn(d)
			continue
		}
		f := d.schema.byName[n]
		value, err := d.Get(n)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		pv, err := projectValue(f, value, view)
		if err != nil {
			return nil, err
		}
		out[n] = pv
	}
	return applyHooks(hooks, out)
}

// Changes returns the dirty fields in mutation order with their current
// values. A field whose value was supplied only by its default provider is
// never part of the result, even though the value is resident.
func (d *Document) Changes() map[string]any {
	out := make(map[string]any, len(d.dirty))
	for _, n := range d.dirty {
		if _, fromDefault := d.applied[n]; fromDefault {
			continue
		}
		if v, ok := d.data[n]; ok {
			out[n] = v
		}
	}
	return out
}

// projectValue recurses embedded documents (and embedded list elements) into
// the same view; everything else passes through untouched.
func projectValue(f *Field, value any, view View) (any, error) {
	switch f.kind {
	case KindEmbedded:
		if child, ok := value.(*Document); ok {
			return child.Project(view)
		}
		return value, nil
	case KindList:
		items, ok := asSlice(value)
		if !ok || f.item == nil || f.item.kind != KindEmbedded {
			return value, nil
		}
		out := make([]any, 0, len(items))
		for _, it := range items {
			pv, err := projectValue(f.item, it, view)
			if err != nil {
				return nil, err
			}
			out = append(out, pv)
		}
		return out, nil
	default:
		return value, nil
	}
}

// applyHooks runs the pipeline strictly sequentially in declaration order;
// each hook receives the previous hook's output. A failing hook aborts the
// projection, its error surfacing unmodified.
func applyHooks(hooks []Hook, m map[string]any) (map[string]any, error) {
	for _, h := range hooks {
		next, err := h.Apply(m)
		if err != nil {
			return nil, err
		}
		m = next
	}
	return m, nil
}
