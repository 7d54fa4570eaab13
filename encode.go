package dico

import (
	gojson "github.com/goccy/go-json"
)

// MarshalView projects the document into the named view and renders it as
// JSON, ready to hand to a store driver or transport. time.Time values
// render RFC 3339 per encoding convention.
func MarshalView(d *Document, view View) ([]byte, error) {
	m, err := d.Project(view)
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(m)
}

// MarshalJSON renders the document through its save view, so a Document
// stored raw inside a changes projection serializes the same way it would
// persist. The save view's validation gate applies.
func (d *Document) MarshalJSON() ([]byte, error) {
	m, err := d.ForSave()
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(m)
}
