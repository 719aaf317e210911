package ui

import (
	"fmt"
	"strings"
)

// ThingCard is the display form of a discovered Thing
type ThingCard struct {
	Title       string
	ID          string
	Description string
	URL         string
	Instance    string
	HostName    string
	Scheme      string
	Addresses   []string
	Properties  int
	Actions     int
	Events      int
	Extensions  []string
}

// FilterValue implements list.Item so cards can be listed by bubbles/list
func (c ThingCard) FilterValue() string {
	return strings.Join([]string{c.Title, c.ID, c.Instance, c.HostName}, " ")
}

// Name returns the title, or the mDNS instance for untitled Things
func (c ThingCard) Name() string {
	if c.Title != "" {
		return c.Title
	}
	if c.Instance != "" {
		return c.Instance
	}
	return "(untitled)"
}

// Affordances returns a short "3 properties · 1 action · 0 events" summary
func (c ThingCard) Affordances() string {
	return fmt.Sprintf("%d %s · %d %s · %d %s",
		c.Properties, plural(c.Properties, "property", "properties"),
		c.Actions, plural(c.Actions, "action", "actions"),
		c.Events, plural(c.Events, "event", "events"),
	)
}

// Lines returns the card body as aligned key/value lines
func (c ThingCard) Lines() []Param {
	lines := []Param{}
	if c.ID != "" {
		lines = append(lines, Param{Key: "ID", Value: c.ID})
	}
	lines = append(lines, Param{Key: "URL", Value: c.URL})
	if c.HostName != "" {
		lines = append(lines, Param{Key: "Host", Value: c.HostName})
	}
	if len(c.Addresses) > 0 {
		lines = append(lines, Param{Key: "Addresses", Value: strings.Join(c.Addresses, ", ")})
	}
	lines = append(lines, Param{Key: "Affordances", Value: c.Affordances()})
	if len(c.Extensions) > 0 {
		lines = append(lines, Param{Key: "Extensions", Value: strings.Join(c.Extensions, ", ")})
	}
	return lines
}

// Render returns the card as a bordered box
func (c ThingCard) Render(width int, selected bool) string {
	width = clampWidth(width)

	var b strings.Builder
	if selected {
		b.WriteString(CardSelectedTitleStyle.Render("→ " + c.Name()))
	} else {
		b.WriteString(CardTitleStyle.Render("  " + c.Name()))
	}
	if c.Description != "" {
		b.WriteString("\n  ")
		b.WriteString(HeaderCommandStyle.UnsetPaddingLeft().Render(c.Description))
	}
	b.WriteString("\n")

	for _, l := range c.Lines() {
		b.WriteString("\n")
		b.WriteString(ResultKeyStyle.Render("  "+l.Key+":") + " " + ResultValueStyle.Render(l.Value))
	}

	return CardStyle(width, selected).Render(b.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
