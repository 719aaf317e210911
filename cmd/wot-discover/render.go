package main

import (
	"encoding/json"

	"github.com/muurk/wot-discovery/internal/logging"
	"github.com/muurk/wot-discovery/internal/ui"
	"github.com/muurk/wot-discovery/thing"
)

// listEntry is one JSON line of 'list --format json'
type listEntry struct {
	Instance  string                        `json:"instance"`
	HostName  string                        `json:"hostname,omitempty"`
	Addresses []string                      `json:"addresses"`
	Port      int                           `json:"port"`
	Scheme    string                        `json:"scheme"`
	URL       string                        `json:"url"`
	Thing     thing.Document[cliExtensions] `json:"thing"`
}

func addressStrings(rec *cliRecord) []string {
	addrs := make([]string, 0, len(rec.Info.Addresses))
	for _, ip := range rec.Info.Addresses {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

func entryFromRecord(rec *cliRecord) listEntry {
	return listEntry{
		Instance:  rec.Info.Instance,
		HostName:  rec.Info.HostName,
		Addresses: addressStrings(rec),
		Port:      rec.Info.Port,
		Scheme:    rec.Scheme,
		URL:       rec.URL,
		Thing:     rec.Thing,
	}
}

func cardFromRecord(rec *cliRecord) ui.ThingCard {
	doc := &rec.Thing
	props, actions, events := doc.AffordanceCount()

	card := ui.ThingCard{
		Title:       doc.Title,
		ID:          doc.ID,
		Description: doc.Description,
		URL:         rec.URL,
		Instance:    rec.Info.Instance,
		HostName:    rec.Info.HostName,
		Scheme:      rec.Scheme,
		Addresses:   addressStrings(rec),
		Properties:  props,
		Actions:     actions,
		Events:      events,
	}

	if reg, ok := thing.Lookup[registrationInfo](doc.Ext); ok && reg.Registration != nil {
		card.Extensions = append(card.Extensions, "registration")
	}
	return card
}

// logRecord logs a discovered Thing, and its full description at debug level
func logRecord(rec *cliRecord) {
	logging.LogThingFound(rec.Thing.Title, rec.Thing.ID, rec.URL)

	if doc, err := json.Marshal(rec.Thing); err == nil {
		logging.LogThingDocument(rec.URL, doc)
	}
}
