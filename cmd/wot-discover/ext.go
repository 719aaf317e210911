package main

import (
	"github.com/muurk/wot-discovery/discovery"
	"github.com/muurk/wot-discovery/thing"
)

// registrationInfo decodes the "registration" member a Thing Description
// carries when it was handed out by a Thing Description Directory
type registrationInfo struct {
	Registration *struct {
		Created   string  `json:"created,omitempty"`
		Expires   string  `json:"expires,omitempty"`
		Retrieved string  `json:"retrieved,omitempty"`
		Modified  string  `json:"modified,omitempty"`
		TTL       float64 `json:"ttl,omitempty"`
	} `json:"registration,omitempty"`
}

func (registrationInfo) ExtensionName() string { return "registration" }

// cliExtensions is the extension list every CLI command decodes with
type cliExtensions = thing.Cons[registrationInfo, thing.Nil]

// cliDiscoverer is the Discoverer used by list and watch
type cliDiscoverer = discovery.Discoverer[cliExtensions]

// cliRecord is a record decoded with cliExtensions
type cliRecord = discovery.Record[cliExtensions]

// newCLIDiscoverer attaches the CLI extensions to a base Discoverer
func newCLIDiscoverer(opts ...discovery.Option) (*cliDiscoverer, error) {
	d, err := discovery.New(opts...)
	if err != nil {
		return nil, err
	}
	return discovery.Extend[registrationInfo](d), nil
}
