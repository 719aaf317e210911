package discovery

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/muurk/wot-discovery/thing"
)

// Discoverer finds Things advertised over mDNS and fetches their Thing
// Descriptions. E is the extension list the descriptions are decoded with.
//
// A Discoverer owns its browser and HTTP client. Extend moves both into a new
// Discoverer, after which the old value only returns ErrConsumed.
type Discoverer[E thing.List] struct {
	browser Browser
	client  *http.Client
	logger  *zap.Logger
}

// New creates a Discoverer without extensions
func New(opts ...Option) (*Discoverer[thing.Nil], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("discovery")

	browser := o.browser
	if browser == nil {
		zb, err := newZeroconfBrowser(o.ifaces, o.ipType)
		if err != nil {
			return nil, newProtocolError("start session", err)
		}
		browser = zb
	}

	client := o.httpClient
	if client == nil {
		var err error
		client, err = newHTTPClient(o)
		if err != nil {
			return nil, newClientBuildError(err)
		}
	}

	return &Discoverer[thing.Nil]{
		browser: browser,
		client:  client,
		logger:  logger,
	}, nil
}

// newHTTPClient builds a pooled client from the default transport
func newHTTPClient(o *options) (*http.Client, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("default transport is not an *http.Transport")
	}

	transport := base.Clone()
	if o.insecure {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in for self-signed Things
	}

	return &http.Client{Transport: transport, Timeout: o.timeout}, nil
}

// Extend returns a Discoverer whose documents additionally decode extension X.
// The browser and HTTP client are moved, not copied; d must not be used
// afterwards. Extend is not safe to call concurrently with d.Stream.
func Extend[X thing.Extension, L thing.List](d *Discoverer[L]) *Discoverer[thing.Cons[X, L]] {
	next := &Discoverer[thing.Cons[X, L]]{
		browser: d.browser,
		client:  d.client,
		logger:  d.logger,
	}
	d.browser = nil
	d.client = nil
	return next
}

// Extensions returns the names of the attached extensions, first attached first
func (d *Discoverer[E]) Extensions() []string {
	var list E
	return thing.Names(list)
}

// Stream opens a browse session for ServiceType and returns the stream of
// discovered Things. Each call opens an independent session; the same Thing
// seen by two sessions is reported twice.
//
// The session lives until the returned stream is closed or ctx ends.
func (d *Discoverer[E]) Stream(ctx context.Context) (*Stream[E], error) {
	if d.browser == nil || d.client == nil {
		return nil, ErrConsumed
	}

	service, domain := splitServiceType(ServiceType)
	sctx, cancel := context.WithCancel(ctx)

	events, err := d.browser.Browse(sctx, service, domain)
	if err != nil {
		cancel()
		return nil, newProtocolError("browse", err)
	}

	d.logger.Info("Browsing for things",
		zap.String("service", service),
		zap.String("domain", domain),
		zap.Strings("extensions", d.Extensions()),
	)

	return newStream[E](sctx, cancel, events, d.client, d.logger), nil
}
