package discovery

import (
	"net"
	"strconv"
)

const (
	// WellKnownPath is the TD path used when an announcement has no "td" property
	WellKnownPath = "/.well-known/wot"

	// PropertyTD is the TXT key carrying the TD request path
	PropertyTD = "td"

	// PropertyScheme is the TXT key carrying the URI scheme
	PropertyScheme = "scheme"

	// PropertyTLS is the legacy TXT key; "1" selects https
	PropertyTLS = "tls"
)

// Target is where a Thing Description is fetched from
type Target struct {
	Host   string
	Port   int
	Path   string
	Scheme string
}

// URL returns {scheme}://{host}:{port}{path}. IPv6 hosts are bracketed.
func (t Target) URL() string {
	return t.Scheme + "://" + net.JoinHostPort(t.Host, strconv.Itoa(t.Port)) + t.Path
}

// Resolve derives the fetch target from a resolved announcement.
// The first advertised address is used as-is; there is no preference between
// address families.
func Resolve(info *ServiceInfo) (Target, error) {
	if info == nil || len(info.Addresses) == 0 {
		instance := ""
		if info != nil {
			instance = info.Instance
		}
		return Target{}, newNoAddressError(instance)
	}

	path, ok := info.Property(PropertyTD)
	if !ok {
		path = WellKnownPath
	}

	return Target{
		Host:   info.Addresses[0].String(),
		Port:   info.Port,
		Path:   path,
		Scheme: resolveScheme(info),
	}, nil
}

// resolveScheme applies the scheme fallback chain: "scheme" verbatim, then
// legacy "tls" ("1" is https, anything else http), then http.
func resolveScheme(info *ServiceInfo) string {
	if scheme, ok := info.Property(PropertyScheme); ok {
		return scheme
	}
	if tls, ok := info.Property(PropertyTLS); ok && tls == "1" {
		return "https"
	}
	return "http"
}
