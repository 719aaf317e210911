package thing

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	// ErrNotObject reports a document body that is not a JSON object
	ErrNotObject = errors.New("thing: document is not a JSON object")

	// ErrMissingTitle reports a document without the mandatory title member
	ErrMissingTitle = errors.New("thing: document has no title")
)

// Document is a Thing Description extended with the fields of list E.
// The core members are reachable directly through the embedded Thing; the
// extension values live in Ext.
type Document[E List] struct {
	Thing
	Ext E `json:"-"`
}

// UnmarshalJSON decodes data into the core Thing and into every extension
func (d *Document[E]) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	if members == nil {
		return ErrNotObject
	}
	if title, ok := members["title"]; !ok || bytes.Equal(bytes.TrimSpace(title), []byte("null")) {
		return ErrMissingTitle
	}

	if err := json.Unmarshal(data, &d.Thing); err != nil {
		return err
	}
	return json.Unmarshal(data, &d.Ext)
}

// MarshalJSON encodes the document as a single flat object.
// Core TD members take precedence over extension members with the same key.
func (d Document[E]) MarshalJSON() ([]byte, error) {
	core, err := json.Marshal(d.Thing)
	if err != nil {
		return nil, err
	}
	ext, err := json.Marshal(d.Ext)
	if err != nil {
		return nil, err
	}
	return mergeObjects(ext, core)
}

// Extensions returns the names of the extensions attached to the document type
func (d *Document[E]) Extensions() []string {
	return Names(d.Ext)
}
