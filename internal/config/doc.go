// Package config provides user preferences for the wot-discover CLI.
//
// Preferences live in a YAML file following OS-specific conventions:
//   - Linux: $XDG_CONFIG_HOME/wot-discover/config.yaml or $HOME/.config/wot-discover/config.yaml
//   - macOS: $HOME/.config/wot-discover/config.yaml
//   - Windows: %LOCALAPPDATA%\wot-discover\config.yaml
//
// A missing file is not an error; the defaults apply. Command-line flags
// always override file values.
//
// # Example File
//
//	version: 1
//	discovery:
//	  timeout: 30
//	  http_timeout: 5
//	  insecure_skip_verify: false
//	  ip_traffic: v4
//	  interfaces: [eth0]
//	output:
//	  format: json
//	  pretty: true
//	log:
//	  level: info
//
// The discovery library itself has no configuration surface; this package
// only feeds the CLI.
package config
