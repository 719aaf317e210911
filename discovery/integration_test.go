//go:build integration

package discovery

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

// TestIntegration_Advertised registers a Thing over real mDNS and discovers
// it. Requires multicast on the host: go test -tags integration ./discovery
func TestIntegration_Advertised(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"TestThing"}`))
	})}
	go func() { _ = srv.Serve(ln) }()
	defer func() { _ = srv.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	service, domain := splitServiceType(ServiceType)
	adv, err := zeroconf.RegisterProxy("TestThing", service, domain, port, "testthing", []string{"127.0.0.1"}, nil, nil)
	if err != nil {
		t.Fatalf("failed to advertise: %v", err)
	}
	defer adv.Shutdown()

	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	s, err := d.Stream(ctx)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	defer s.Close()

	for rec, err := range s.All() {
		if err != nil {
			t.Logf("ignoring discovery error: %v", err)
			continue
		}
		if rec.Thing.Title != "TestThing" {
			continue
		}
		if rec.Scheme != "http" {
			t.Errorf("Scheme = %v, want http", rec.Scheme)
		}
		return
	}
	t.Fatal("TestThing was not discovered before the deadline")
}
