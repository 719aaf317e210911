// Package urls provides centralized constants for the reference URLs used
// throughout the CLI.
//
// All URLs are defined here as exported constants so they can be updated in
// a single location.
//
// Usage:
//
//	import "github.com/muurk/wot-discovery/internal/urls"
//
//	fmt.Printf("Advertising format: %s\n", urls.DNSSDIntroduction)
package urls
