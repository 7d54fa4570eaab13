package dico

// DerivedFunc computes a value for visibility projections at projection time.
// Derived values are never stored on the document and never dirty-tracked.
type DerivedFunc func(d *Document) any

// HookFunc transforms an already-projected mapping. It may rename, remove, or
// add keys. Returning an error aborts the whole projection call; the error is
// surfaced to the caller unmodified.
type HookFunc func(m map[string]any) (map[string]any, error)

// Hook is one named transform of a view's pipeline.
type Hook struct {
	Name  string
	Apply HookFunc
}

// SchemaDef is the declaration form consumed by NewSchema.
//
// When Extends is set, the parent's fields come first in their declared
// order; a FieldDef whose name matches an inherited field replaces it in
// place, any other FieldDef appends. Visibility lists, derived values and
// hook pipelines are inherited only when the child leaves them empty.
type SchemaDef struct {
	Name      string
	Extends   *Schema
	Fields    []FieldDef
	Owner     []string
	Public    []string
	Derived   map[string]DerivedFunc
	PreSave   []Hook
	PreOwner  []Hook
	PrePublic []Hook
}

// Schema is the immutable registry of one record type: its ordered field
// specifications, alias table, visibility lists and hook pipelines. Declare
// it once, before any Document exists; afterwards it is read-only and safe
// for any number of concurrent readers.
type Schema struct {
	name      string
	fields    []*Field
	byName    map[string]*Field
	aliases   map[string]string // alias -> canonical field name
	owner     []string
	public    []string
	derived   map[string]DerivedFunc
	preSave   []Hook
	preOwner  []Hook
	prePublic []Hook
}

// NewSchema compiles a declaration into an immutable Schema. Field names must
// be unique; aliases must be unique across the schema and must not collide
// with any canonical field name; visibility lists may only name declared
// fields or derived values. Patterns compile here, exactly once.
func NewSchema(def SchemaDef) (*Schema, error) {
	s := &Schema{
		name:    def.Name,
		byName:  map[string]*Field{},
		aliases: map[string]string{},
		derived: map[string]DerivedFunc{},
	}
	if def.Name == "" {
		return nil, &SchemaError{Schema: "", Reason: "schema name must not be empty"}
	}

	inherited := map[string]bool{}
	if p := def.Extends; p != nil {
		s.fields = append(s.fields, p.fields...)
		for _, f := range p.fields {
			inherited[f.name] = true
		}
		s.owner = append([]string(nil), p.owner...)
		s.public = append([]string(nil), p.public...)
		for k, v := range p.derived {
			s.derived[k] = v
		}
		s.preSave = append([]Hook(nil), p.preSave...)
		s.preOwner = append([]Hook(nil), p.preOwner...)
		s.prePublic = append([]Hook(nil), p.prePublic...)
	}

	declared := map[string]bool{}
	for _, fd := range def.Fields {
		if fd.Name == "" {
			return nil, &SchemaError{Schema: def.Name, Reason: "field name must not be empty"}
		}
		if declared[fd.Name] {
			return nil, &SchemaError{Schema: def.Name, Reason: "duplicate field " + fd.Name}
		}
		declared[fd.Name] = true
		f, err := compileField(fd, def.Name)
		if err != nil {
			return nil, err
		}
		if inherited[fd.Name] {
			// override keeps the inherited declaration position
			s.fields[indexOfField(s.fields, fd.Name)] = f
		} else {
			s.fields = append(s.fields, f)
		}
	}

	for _, f := range s.fields {
		s.byName[f.name] = f
	}
	for _, f := range s.fields {
		for _, a := range f.aliases {
			if _, isField := s.byName[a]; isField {
				return nil, &SchemaError{Schema: def.Name, Reason: "alias " + a + " collides with a field name"}
			}
			if prev, dup := s.aliases[a]; dup && prev != f.name {
				return nil, &SchemaError{Schema: def.Name, Reason: "alias " + a + " declared on more than one field"}
			}
			s.aliases[a] = f.name
		}
	}

	for k, fn := range def.Derived {
		s.derived[k] = fn
	}
	for k := range s.derived {
		if _, isField := s.byName[k]; isField {
			return nil, &SchemaError{Schema: def.Name, Reason: "derived value " + k + " collides with a field name"}
		}
	}
	if len(def.Owner) > 0 {
		s.owner = append([]string(nil), def.Owner...)
	}
	if len(def.Public) > 0 {
		s.public = append([]string(nil), def.Public...)
	}
	for _, n := range append(append([]string(nil), s.owner...), s.public...) {
		if _, ok := s.byName[n]; ok {
			continue
		}
		if _, ok := s.derived[n]; ok {
			continue
		}
		return nil, &SchemaError{Schema: def.Name, Reason: "visibility list names unknown field " + n}
	}
	if len(def.PreSave) > 0 {
		s.preSave = append([]Hook(nil), def.PreSave...)
	}
	if len(def.PreOwner) > 0 {
		s.preOwner = append([]Hook(nil), def.PreOwner...)
	}
	if len(def.PrePublic) > 0 {
		s.prePublic = append([]Hook(nil), def.PrePublic...)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on declaration errors. Intended for
// package-level schema variables.
func MustSchema(def SchemaDef) *Schema {
	s, err := NewSchema(def)
	if err != nil {
		panic(err)
	}
	return s
}

func indexOfField(fields []*Field, name string) int {
	for i, f := range fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

func (s *Schema) Name() string { return s.name }

// Fields returns the field specifications in declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field specification by canonical name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Resolve maps a construction key, canonical or alias, to its canonical
// field name.
func (s *Schema) Resolve(key string) (string, bool) {
	if _, ok := s.byName[key]; ok {
		return key, true
	}
	if name, ok := s.aliases[key]; ok {
		return name, true
	}
	return "", false
}

// OwnerFields returns the owner visibility list in declaration order.
func (s *Schema) OwnerFields() []string { return append([]string(nil), s.owner...) }

// PublicFields returns the public visibility list in declaration order.
func (s *Schema) PublicFields() []string { return append([]string(nil), s.public...) }
