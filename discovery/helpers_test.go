package discovery

import (
	"context"
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/muurk/wot-discovery/thing"
)

// fakeBrowser replays events pushed by the test
type fakeBrowser struct {
	events chan Event
	err    error
	calls  atomic.Int32
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{events: make(chan Event, eventBuffer)}
}

func (b *fakeBrowser) Browse(ctx context.Context, service, domain string) (<-chan Event, error) {
	b.calls.Add(1)
	if b.err != nil {
		return nil, b.err
	}
	return b.events, nil
}

func (b *fakeBrowser) resolve(info *ServiceInfo) {
	b.events <- Event{Kind: EventResolved, Info: info}
}

// announce builds a resolved announcement pointing at srv
func announce(t *testing.T, instance string, srv *httptest.Server, txt ...string) *ServiceInfo {
	t.Helper()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split server host: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}

	return &ServiceInfo{
		Instance:   instance,
		Service:    "_wot._tcp",
		Domain:     "local.",
		HostName:   instance + ".local.",
		Port:       port,
		Addresses:  []net.IP{net.ParseIP(host)},
		Text:       txt,
		Properties: parseTXT(txt),
		TTL:        120,
	}
}

// newTestDiscoverer builds a Discoverer around a fake browser
func newTestDiscoverer(t *testing.T, b Browser) *Discoverer[thing.Nil] {
	t.Helper()

	d, err := New(WithBrowser(b))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}
