package config

import (
	"fmt"
	"strings"
)

// CurrentVersion is the config file schema version
const CurrentVersion = 1

// Output formats accepted by the CLI
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IP traffic selections for mDNS
const (
	IPTrafficV4   = "v4"
	IPTrafficV6   = "v6"
	IPTrafficBoth = "both"
)

// Config represents the entire user configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	Discovery *DiscoveryPrefs `yaml:"discovery,omitempty"`
	Output    *OutputPrefs    `yaml:"output,omitempty"`
	Log       *LogPrefs       `yaml:"log,omitempty"`
}

// DiscoveryPrefs controls browsing and fetching.
type DiscoveryPrefs struct {
	Timeout            int      `yaml:"timeout"`                  // Seconds to browse; 0 runs until interrupted
	HTTPTimeout        int      `yaml:"http_timeout"`             // Per-request timeout in seconds; 0 disables it
	InsecureSkipVerify bool     `yaml:"insecure_skip_verify"`     // Accept self-signed https Things
	IPTraffic          string   `yaml:"ip_traffic"`               // "v4", "v6" or "both"
	Interfaces         []string `yaml:"interfaces,omitempty"`     // Interface names to browse on (empty = all)
}

// OutputPrefs controls how records are printed.
type OutputPrefs struct {
	Format string `yaml:"format"` // "text" or "json"
	Pretty bool   `yaml:"pretty"` // Indent JSON output
}

// LogPrefs controls diagnostic logging.
type LogPrefs struct {
	Level string `yaml:"level,omitempty"` // Empty keeps logging silent
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	c := &Config{Version: CurrentVersion}
	c.applyDefaults()
	return c
}

// applyDefaults fills sections missing from a loaded file
func (c *Config) applyDefaults() {
	if c.Discovery == nil {
		c.Discovery = &DiscoveryPrefs{
			Timeout:   10,
			IPTraffic: IPTrafficBoth,
		}
	}
	if c.Discovery.IPTraffic == "" {
		c.Discovery.IPTraffic = IPTrafficBoth
	}
	if c.Output == nil {
		c.Output = &OutputPrefs{Format: FormatText}
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Log == nil {
		c.Log = &LogPrefs{}
	}
}

// Validate checks values that the CLI cannot interpret.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	if c.Discovery.Timeout < 0 {
		return fmt.Errorf("discovery.timeout must not be negative, got %d", c.Discovery.Timeout)
	}
	if c.Discovery.HTTPTimeout < 0 {
		return fmt.Errorf("discovery.http_timeout must not be negative, got %d", c.Discovery.HTTPTimeout)
	}

	switch strings.ToLower(c.Discovery.IPTraffic) {
	case IPTrafficV4, IPTrafficV6, IPTrafficBoth:
	default:
		return fmt.Errorf("discovery.ip_traffic must be one of v4, v6, both; got %q", c.Discovery.IPTraffic)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be text or json; got %q", c.Output.Format)
	}

	return nil
}
