package thing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Extension is implemented by types that add members to a Thing Description.
// The method must be declared on the value receiver so the zero value of the
// type satisfies the constraint.
type Extension interface {
	ExtensionName() string
}

// List is an ordered set of extensions fixed at compile time.
// It is sealed: only Nil and Cons satisfy it.
type List interface {
	// names returns extension names, first attached first
	names() []string

	// each visits extensions from the most recently attached one; it stops
	// when fn returns false and reports whether the walk completed
	each(fn func(Extension) bool) bool
}

// Nil is the empty extension list
type Nil struct{}

func (Nil) names() []string { return nil }

func (Nil) each(func(Extension) bool) bool { return true }

// UnmarshalJSON ignores its input; Nil carries no fields
func (*Nil) UnmarshalJSON([]byte) error { return nil }

// MarshalJSON encodes Nil as an empty object
func (Nil) MarshalJSON() ([]byte, error) { return []byte("{}"), nil }

// Cons prepends extension H to list T. Head is the most recently attached
// extension.
type Cons[H Extension, T List] struct {
	Head H
	Tail T
}

func (c Cons[H, T]) names() []string {
	return append(c.Tail.names(), c.Head.ExtensionName())
}

func (c Cons[H, T]) each(fn func(Extension) bool) bool {
	if !fn(c.Head) {
		return false
	}
	return c.Tail.each(fn)
}

// UnmarshalJSON decodes the same object into the head and every tail element
func (c *Cons[H, T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.Head); err != nil {
		var zero H
		return fmt.Errorf("extension %s: %w", zero.ExtensionName(), err)
	}
	return json.Unmarshal(data, &c.Tail)
}

// MarshalJSON merges the head object over the tail object
func (c Cons[H, T]) MarshalJSON() ([]byte, error) {
	tail, err := json.Marshal(c.Tail)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(c.Head)
	if err != nil {
		return nil, fmt.Errorf("extension %s: %w", c.Head.ExtensionName(), err)
	}
	merged, err := mergeObjects(tail, head)
	if err != nil {
		return nil, fmt.Errorf("extension %s: %w", c.Head.ExtensionName(), err)
	}
	return merged, nil
}

// Names returns the names of the extensions in l, first attached first
func Names(l List) []string {
	return l.names()
}

// Lookup returns the most recently attached extension of type X in l
func Lookup[X Extension](l List) (X, bool) {
	var (
		found X
		ok    bool
	)
	l.each(func(e Extension) bool {
		if x, match := e.(X); match {
			found, ok = x, true
			return false
		}
		return true
	})
	return found, ok
}

// mergeObjects returns the union of two JSON objects; keys in over win
func mergeObjects(base, over []byte) ([]byte, error) {
	dst, err := decodeObject(base)
	if err != nil {
		return nil, err
	}
	src, err := decodeObject(over)
	if err != nil {
		return nil, err
	}
	for k, v := range src {
		dst[k] = v
	}
	return json.Marshal(dst)
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	obj := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return obj, nil
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("value does not encode to a JSON object: %w", err)
	}
	return obj, nil
}
