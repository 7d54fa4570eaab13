// Package yamlschema declares dico schemas from YAML documents, for record
// types whose shape lives in configuration rather than code:
//
//	schemas:
//	  - name: address
//	    fields:
//	      - {name: city, kind: string, required: true}
//	      - {name: zipcode, kind: string, pattern: "^[0-9]{5}$"}
//	  - name: user
//	    fields:
//	      - {name: id, kind: identifier, aliases: [_id]}
//	      - {name: firstname, kind: string, required: true, max: 40}
//	      - {name: addresses, kind: list, item: {kind: embedded, schema: address}}
//	    owner: [firstname]
//	    public: [firstname]
//
// Decoding is strict: unknown YAML keys fail Load. Embedded fields refer to
// schemas by name; the target must already be in the registry, either loaded
// earlier in the same document or registered through Add. Hook pipelines and
// derived values are code, not configuration; attach them with dsl.Doc(...).
// Extend(loaded) when a YAML-declared schema needs them.
package yamlschema

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	dico "github.com/dico-go/dico"
)

type fileDoc struct {
	Schemas []schemaDoc `yaml:"schemas"`
}

type schemaDoc struct {
	Name   string     `yaml:"name"`
	Fields []fieldDoc `yaml:"fields"`
	Owner  []string   `yaml:"owner"`
	Public []string   `yaml:"public"`
}

type fieldDoc struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Required bool      `yaml:"required"`
	Default  any       `yaml:"default"`
	Min      int       `yaml:"min"`
	Max      int       `yaml:"max"`
	Pattern  string    `yaml:"pattern"`
	Aliases  []string  `yaml:"aliases"`
	Choices  []any     `yaml:"choices"`
	Item     *fieldDoc `yaml:"item"`
	Schema   string    `yaml:"schema"`
}

// Registry holds schemas declared so far, by name, preserving load order.
type Registry struct {
	byName map[string]*dico.Schema
	order  []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byName: map[string]*dico.Schema{}}
}

// Add registers a code-declared schema so YAML documents can embed it.
func (r *Registry) Add(s *dico.Schema) error {
	if _, dup := r.byName[s.Name()]; dup {
		return fmt.Errorf("yamlschema: schema %q already registered", s.Name())
	}
	r.byName[s.Name()] = s
	r.order = append(r.order, s.Name())
	return nil
}

// Schema looks a schema up by name.
func (r *Registry) Schema(name string) (*dico.Schema, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Names returns the registered schema names in load order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Load declares every schema of a YAML document into the registry, in
// document order.
func (r *Registry) Load(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file fileDoc
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("yamlschema: decode: %w", err)
	}
	for _, sd := range file.Schemas {
		s, err := r.compile(sd)
		if err != nil {
			return err
		}
		if err := r.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Load declares the schemas of a standalone YAML document into a fresh
// registry.
func Load(data []byte) (*Registry, error) {
	r := New()
	if err := r.Load(data); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) compile(sd schemaDoc) (*dico.Schema, error) {
	def := dico.SchemaDef{
		Name:   sd.Name,
		Owner:  sd.Owner,
		Public: sd.Public,
	}
	for _, fd := range sd.Fields {
		cf, err := r.compileField(sd.Name, fd)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, *cf)
	}
	return dico.NewSchema(def)
}

func (r *Registry) compileField(schemaName string, fd fieldDoc) (*dico.FieldDef, error) {
	kind, ok := kindFromString(fd.Kind)
	if !ok {
		return nil, fmt.Errorf("yamlschema: schema %q, field %q: unknown kind %q", schemaName, fd.Name, fd.Kind)
	}
	def := &dico.FieldDef{
		Name:     fd.Name,
		Kind:     kind,
		Required: fd.Required,
		MinLen:   fd.Min,
		MaxLen:   fd.Max,
		Pattern:  fd.Pattern,
		Aliases:  fd.Aliases,
		Choices:  fd.Choices,
	}
	switch kind {
	case dico.KindEmbedded:
		nested, ok := r.byName[fd.Schema]
		if !ok {
			return nil, fmt.Errorf("yamlschema: schema %q, field %q: embedded schema %q not registered", schemaName, fd.Name, fd.Schema)
		}
		def.Embedded = nested
	case dico.KindList:
		if fd.Item == nil {
			return nil, fmt.Errorf("yamlschema: schema %q, field %q: list needs an item", schemaName, fd.Name)
		}
		item, err := r.compileField(schemaName, *fd.Item)
		if err != nil {
			return nil, err
		}
		def.Item = item
	}
	if fd.Default != nil {
		// "now" on a date-time field is the one provider expressible in
		// configuration; everything else is a literal.
		if kind == dico.KindDateTime && fd.Default == "now" {
			def.DefaultFn = func() any { return time.Now().UTC() }
		} else {
			def.Default = fd.Default
		}
	}
	return def, nil
}

func kindFromString(s string) (dico.Kind, bool) {
	switch s {
	case "bool", "boolean":
		return dico.KindBool, true
	case "string":
		return dico.KindString, true
	case "int", "integer":
		return dico.KindInt, true
	case "float":
		return dico.KindFloat, true
	case "ip", "ip-address":
		return dico.KindIP, true
	case "url":
		return dico.KindURL, true
	case "email":
		return dico.KindEmail, true
	case "datetime", "date-time":
		return dico.KindDateTime, true
	case "id", "identifier":
		return dico.KindIdentifier, true
	case "list":
		return dico.KindList, true
	case "embedded":
		return dico.KindEmbedded, true
	default:
		return dico.KindInvalid, false
	}
}
