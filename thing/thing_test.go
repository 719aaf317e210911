package thing

import (
	"encoding/json"
	"strings"
	"testing"
)

const lampTD = `{
	"@context": "https://www.w3.org/2022/wot/td/v1.1",
	"@type": ["Thing", "saref:LightSwitch"],
	"id": "urn:dev:ops:32473-WoTLamp-1234",
	"title": "MyLampThing",
	"security": "nosec_sc",
	"securityDefinitions": {"nosec_sc": {"scheme": "nosec"}},
	"properties": {"status": {"type": "string"}},
	"actions": {"toggle": {}},
	"events": {"overheating": {}, "burnout": {}},
	"version": {"instance": "1.0.0"},
	"links": [{"href": "https://example.com/manual", "rel": "service-doc", "hreflang": "en"}]
}`

func TestThing_Unmarshal(t *testing.T) {
	var th Thing
	if err := json.Unmarshal([]byte(lampTD), &th); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if th.Title != "MyLampThing" {
		t.Errorf("Title = %q, want MyLampThing", th.Title)
	}
	if th.ID != "urn:dev:ops:32473-WoTLamp-1234" {
		t.Errorf("ID = %q, want urn:dev:ops:32473-WoTLamp-1234", th.ID)
	}
	if !th.Type.Contains("saref:LightSwitch") {
		t.Errorf("Type = %v, want to contain saref:LightSwitch", th.Type)
	}
	if len(th.Security) != 1 || th.Security[0] != "nosec_sc" {
		t.Errorf("Security = %v, want [nosec_sc]", th.Security)
	}
	if th.Version == nil || th.Version.Instance != "1.0.0" {
		t.Errorf("Version = %+v, want instance 1.0.0", th.Version)
	}
	if len(th.Links) != 1 || th.Links[0].Hreflang[0] != "en" {
		t.Errorf("Links = %+v, want one link with hreflang en", th.Links)
	}

	props, actions, events := th.AffordanceCount()
	if props != 1 || actions != 1 || events != 2 {
		t.Errorf("AffordanceCount() = %d, %d, %d, want 1, 1, 2", props, actions, events)
	}
}

func TestThing_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not valid JSON at all"},
		{"title wrong type", `{"title": 42}`},
		{"security wrong type", `{"title": "x", "security": {"a": 1}}`},
		{"truncated", `{"title": "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var th Thing
			if err := json.Unmarshal([]byte(tt.body), &th); err == nil {
				t.Errorf("Unmarshal(%q) error = nil, want error", tt.body)
			}
		})
	}
}

func TestThing_String(t *testing.T) {
	tests := []struct {
		name  string
		thing Thing
		want  string
	}{
		{"with id", Thing{Title: "Lamp", ID: "urn:lamp"}, `Thing "Lamp" (urn:lamp)`},
		{"without id", Thing{Title: "Lamp"}, `Thing "Lamp"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.thing.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiString(t *testing.T) {
	tests := []struct {
		input string
		want  []string
		out   string
	}{
		{`"Thing"`, []string{"Thing"}, `"Thing"`},
		{`["a","b"]`, []string{"a", "b"}, `["a","b"]`},
		{`[]`, []string{}, `[]`},
		{`null`, nil, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var m MultiString
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(m) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(m), len(tt.want))
			}
			for i := range tt.want {
				if m[i] != tt.want[i] {
					t.Errorf("m[%d] = %q, want %q", i, m[i], tt.want[i])
				}
			}

			out, err := json.Marshal(m)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.out {
				t.Errorf("Marshal() = %s, want %s", out, tt.out)
			}
		})
	}
}

func TestThing_MarshalOmitsEmpty(t *testing.T) {
	out, err := json.Marshal(Thing{Title: "Bare"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"title":"Bare"}` {
		t.Errorf("Marshal() = %s, want {\"title\":\"Bare\"}", out)
	}
	if strings.Contains(string(out), "@context") {
		t.Error("empty @context should be omitted")
	}
}
