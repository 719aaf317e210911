package discovery

import (
	"net"
	"net/http"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

// options holds Discoverer construction settings
type options struct {
	browser    Browser
	httpClient *http.Client
	timeout    time.Duration
	ifaces     []net.Interface
	ipType     zeroconf.IPType
	logger     *zap.Logger
	insecure   bool
}

// Option configures a Discoverer
type Option func(*options)

// WithBrowser replaces the zeroconf browser, e.g. with a test double
func WithBrowser(b Browser) Option {
	return func(o *options) {
		o.browser = b
	}
}

// WithHTTPClient uses client for all fetches instead of building one
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets a whole-request timeout on the built HTTP client.
// The default is no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithInterfaces restricts browsing to the given network interfaces
func WithInterfaces(ifaces []net.Interface) Option {
	return func(o *options) {
		o.ifaces = ifaces
	}
}

// WithIPType selects IPv4, IPv6 or both for mDNS traffic
func WithIPType(ipType zeroconf.IPType) Option {
	return func(o *options) {
		o.ipType = ipType
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithInsecureSkipVerify disables TLS certificate checks for https Things
func WithInsecureSkipVerify(insecure bool) Option {
	return func(o *options) {
		o.insecure = insecure
	}
}
