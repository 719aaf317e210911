package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestThingCard_Name(t *testing.T) {
	tests := []struct {
		card ThingCard
		want string
	}{
		{ThingCard{Title: "Lamp", Instance: "lamp-1"}, "Lamp"},
		{ThingCard{Instance: "lamp-1"}, "lamp-1"},
		{ThingCard{}, "(untitled)"},
	}

	for _, tt := range tests {
		if got := tt.card.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestThingCard_Affordances(t *testing.T) {
	c := ThingCard{Properties: 1, Actions: 2, Events: 0}
	if got, want := c.Affordances(), "1 property · 2 actions · 0 events"; got != want {
		t.Errorf("Affordances() = %q, want %q", got, want)
	}
}

func TestThingCard_Lines(t *testing.T) {
	c := ThingCard{
		ID:         "urn:dev:lamp",
		URL:        "http://10.0.0.2:8080/.well-known/wot",
		Addresses:  []string{"10.0.0.2", "fe80::2"},
		Extensions: []string{"registration"},
	}

	var keys []string
	for _, l := range c.Lines() {
		keys = append(keys, l.Key)
	}
	if got, want := strings.Join(keys, ","), "ID,URL,Addresses,Affordances,Extensions"; got != want {
		t.Errorf("line keys = %v, want %v", got, want)
	}
}

func TestThingCard_Render(t *testing.T) {
	c := ThingCard{Title: "Lamp", URL: "http://10.0.0.2:8080/.well-known/wot"}

	out := c.Render(80, true)
	for _, want := range []string{"→ Lamp", "http://10.0.0.2:8080/.well-known/wot"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(c.Render(80, false), "→") {
		t.Error("unselected card should not show the selection marker")
	}
}

func TestResult_Render(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "success",
			result: NewSuccessResult("Discovery complete", Param{Key: "Things", Value: "2"}),
			want:   []string{"SUCCESS", "Discovery complete", "Things:", "2"},
		},
		{
			name:   "failure",
			result: NewFailureResult("Discovery failed", errors.New("no multicast"), []string{"Check the firewall"}),
			want:   []string{"FAILED", "Error: no multicast", "Troubleshooting:", "Check the firewall"},
		},
		{
			name:   "warning",
			result: NewWarningResult("No Things found").AddTroubleshooting("Increase --timeout"),
			want:   []string{"WARNING", "No Things found", "Increase --timeout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(80).Render()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestHeader_Render(t *testing.T) {
	h := NewHeader("Thing Discovery", "wot-discover list",
		Param{Key: "Service", Value: "_wot._tcp.local."},
		Param{Key: "Timeout", Value: "10s"},
	).SetWidth(80)

	out := h.Render()
	for _, want := range []string{"THING DISCOVERY", "wot-discover list", "Service:", "_wot._tcp.local.", "Timeout:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Service:") > strings.Index(out, "Timeout:") {
		t.Error("params should render in the order given")
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(10)

	if p.Width() != MinTerminalWidth {
		t.Errorf("Width() = %d, want clamped to %d", p.Width(), MinTerminalWidth)
	}

	p.PrintThing(ThingCard{Title: "Lamp", URL: "http://x"})
	p.PrintFailure("Thing refused connection")

	out := buf.String()
	if !strings.Contains(out, "Lamp") || !strings.Contains(out, "Thing refused connection") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
