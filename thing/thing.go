package thing

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Thing is the core Thing Description document.
// Only the metadata members are typed; affordances and security schemes are
// left as raw JSON for the caller to interpret.
type Thing struct {
	Context             json.RawMessage            `json:"@context,omitempty"`
	Type                MultiString                `json:"@type,omitempty"`
	ID                  string                     `json:"id,omitempty"`
	Title               string                     `json:"title"`
	Titles              map[string]string          `json:"titles,omitempty"`
	Description         string                     `json:"description,omitempty"`
	Descriptions        map[string]string          `json:"descriptions,omitempty"`
	Version             *VersionInfo               `json:"version,omitempty"`
	Created             string                     `json:"created,omitempty"`
	Modified            string                     `json:"modified,omitempty"`
	Support             string                     `json:"support,omitempty"`
	Base                string                     `json:"base,omitempty"`
	Properties          map[string]json.RawMessage `json:"properties,omitempty"`
	Actions             map[string]json.RawMessage `json:"actions,omitempty"`
	Events              map[string]json.RawMessage `json:"events,omitempty"`
	Links               []Link                     `json:"links,omitempty"`
	Forms               []json.RawMessage          `json:"forms,omitempty"`
	Security            MultiString                `json:"security,omitempty"`
	SecurityDefinitions map[string]json.RawMessage `json:"securityDefinitions,omitempty"`
	Profile             MultiString                `json:"profile,omitempty"`
	SchemaDefinitions   map[string]json.RawMessage `json:"schemaDefinitions,omitempty"`
	URIVariables        map[string]json.RawMessage `json:"uriVariables,omitempty"`
}

// VersionInfo carries the TD "version" member
type VersionInfo struct {
	Instance string `json:"instance"`
	Model    string `json:"model,omitempty"`
}

// Link is a web link attached to a Thing
type Link struct {
	Href     string      `json:"href"`
	Type     string      `json:"type,omitempty"`
	Rel      string      `json:"rel,omitempty"`
	Anchor   string      `json:"anchor,omitempty"`
	Sizes    string      `json:"sizes,omitempty"`
	Hreflang MultiString `json:"hreflang,omitempty"`
}

// String returns a short human-readable summary of the Thing
func (t *Thing) String() string {
	if t.ID == "" {
		return fmt.Sprintf("Thing %q", t.Title)
	}
	return fmt.Sprintf("Thing %q (%s)", t.Title, t.ID)
}

// AffordanceCount returns the number of properties, actions and events
func (t *Thing) AffordanceCount() (properties, actions, events int) {
	return len(t.Properties), len(t.Actions), len(t.Events)
}

// MultiString decodes a TD member that may be either a single string or an
// array of strings. It always encodes back to the shorter form.
type MultiString []string

// UnmarshalJSON implements json.Unmarshaler
func (m *MultiString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*m = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		*m = values
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = MultiString{value}
	return nil
}

// MarshalJSON implements json.Marshaler
func (m MultiString) MarshalJSON() ([]byte, error) {
	if len(m) == 1 {
		return json.Marshal(m[0])
	}
	return json.Marshal([]string(m))
}

// Contains reports whether value is one of the entries
func (m MultiString) Contains(value string) bool {
	for _, v := range m {
		if v == value {
			return true
		}
	}
	return false
}
