package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/muurk/wot-discovery/thing"
)

type registrationInfo struct {
	Registration *struct {
		TTL int `json:"ttl"`
	} `json:"registration,omitempty"`
}

func (registrationInfo) ExtensionName() string { return "registration" }

type vendorInfo struct {
	Serial string `json:"acme:serial"`
}

func (vendorInfo) ExtensionName() string { return "acme" }

func TestNew_WithBrowser(t *testing.T) {
	browser := newFakeBrowser()
	d := newTestDiscoverer(t, browser)

	if d.client == nil {
		t.Fatal("New() should build an HTTP client")
	}
	if len(d.Extensions()) != 0 {
		t.Errorf("Extensions() = %v, want none", d.Extensions())
	}
}

func TestNew_WithHTTPClient(t *testing.T) {
	client := &http.Client{}
	d, err := New(WithBrowser(newFakeBrowser()), WithHTTPClient(client))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.client != client {
		t.Error("New() should use the supplied client")
	}
}

func TestNewHTTPClient(t *testing.T) {
	client, err := newHTTPClient(&options{timeout: 3 * time.Second, insecure: true})
	if err != nil {
		t.Fatalf("newHTTPClient() error = %v", err)
	}
	if client.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", client.Timeout)
	}

	transport, ok := client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", client.Transport)
	}
	if transport == http.DefaultTransport {
		t.Error("client should not share the default transport")
	}
	if transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("InsecureSkipVerify should be set")
	}
}

func TestStream_BrowseFailure(t *testing.T) {
	browser := newFakeBrowser()
	browser.err = errors.New("socket closed")

	_, err := newTestDiscoverer(t, browser).Stream(context.Background())
	if !IsProtocolUnavailable(err) {
		t.Fatalf("Stream() error = %v, want protocol unavailable", err)
	}
}

func TestStream_IndependentSessions(t *testing.T) {
	browser := newFakeBrowser()
	d := newTestDiscoverer(t, browser)

	for i := 0; i < 2; i++ {
		s, err := d.Stream(context.Background())
		if err != nil {
			t.Fatalf("Stream() error = %v", err)
		}
		s.Close()
	}

	if n := browser.calls.Load(); n != 2 {
		t.Errorf("Browse called %d times, want 2", n)
	}
}

func TestExtend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"title": "Lamp",
			"id": "urn:dev:lamp",
			"registration": {"ttl": 90},
			"acme:serial": "SN-1"
		}`))
	}))
	defer srv.Close()

	browser := newFakeBrowser()
	base := newTestDiscoverer(t, browser)
	withReg := Extend[registrationInfo](base)
	d := Extend[vendorInfo](withReg)

	if got, want := d.Extensions(), []string{"registration", "acme"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}

	if _, err := base.Stream(context.Background()); !errors.Is(err, ErrConsumed) {
		t.Errorf("base Stream() error = %v, want ErrConsumed", err)
	}
	if _, err := withReg.Stream(context.Background()); !errors.Is(err, ErrConsumed) {
		t.Errorf("intermediate Stream() error = %v, want ErrConsumed", err)
	}

	s, err := d.Stream(context.Background())
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	defer s.Close()

	browser.resolve(announce(t, "lamp", srv))

	r, err := nextWithin(t, s, 5*time.Second)
	if err != nil || r.Err != nil {
		t.Fatalf("Next() = %v, %v", r.Err, err)
	}

	doc := r.Record.Thing
	if doc.Title != "Lamp" {
		t.Errorf("Title = %v, want Lamp", doc.Title)
	}
	if doc.Ext.Head.Serial != "SN-1" {
		t.Errorf("serial = %v, want SN-1", doc.Ext.Head.Serial)
	}

	reg, ok := thing.Lookup[registrationInfo](doc.Ext)
	if !ok || reg.Registration == nil || reg.Registration.TTL != 90 {
		t.Errorf("Lookup(registration) = %+v, %v; want ttl 90", reg, ok)
	}
}
