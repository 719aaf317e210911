package discovery

import (
	"net"
	"reflect"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestSplitServiceType(t *testing.T) {
	tests := []struct {
		in      string
		service string
		domain  string
	}{
		{ServiceType, "_wot._tcp", "local."},
		{"_http._tcp.example.com.", "_http._tcp", "example.com."},
		{"_wot", "_wot", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			service, domain := splitServiceType(tt.in)
			if service != tt.service || domain != tt.domain {
				t.Errorf("splitServiceType(%q) = %q, %q; want %q, %q", tt.in, service, domain, tt.service, tt.domain)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"td=/a=b", "Scheme=https", "flag", "", "scheme=http"})
	want := map[string]string{
		"td":     "/a=b",
		"scheme": "https",
		"flag":   "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseTXT() = %v, want %v", got, want)
	}
}

func TestServiceInfo_Property(t *testing.T) {
	var empty ServiceInfo
	if _, ok := empty.Property("td"); ok {
		t.Error("Property() on empty info should report absent")
	}

	si := ServiceInfo{Properties: map[string]string{"td": "/x"}}
	if v, ok := si.Property("td"); !ok || v != "/x" {
		t.Errorf("Property(td) = %q, %v; want /x, true", v, ok)
	}
}

func TestEventFromEntry(t *testing.T) {
	entry := func(host string, port int, ttl uint32) *zeroconf.ServiceEntry {
		e := zeroconf.NewServiceEntry("lamp", "_wot._tcp", "local.")
		e.HostName = host
		e.Port = port
		e.TTL = ttl
		e.Text = []string{"td=/td", "scheme=http"}
		e.AddrIPv4 = []net.IP{net.ParseIP("10.0.0.2")}
		e.AddrIPv6 = []net.IP{net.ParseIP("fe80::2")}
		return e
	}

	tests := []struct {
		name  string
		entry *zeroconf.ServiceEntry
		want  EventKind
	}{
		{"resolved", entry("lamp.local.", 8080, 120), EventResolved},
		{"goodbye", entry("lamp.local.", 8080, 0), EventRemoved},
		{"incomplete", entry("", 0, 120), EventFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := eventFromEntry(tt.entry)
			if ev.Kind != tt.want {
				t.Fatalf("Kind = %v, want %v", ev.Kind, tt.want)
			}
			if ev.Info.Instance != "lamp" || ev.Info.Service != "_wot._tcp" {
				t.Errorf("Info = %+v, want lamp/_wot._tcp", ev.Info)
			}
			if len(ev.Info.Addresses) != 2 || !ev.Info.Addresses[0].Equal(net.ParseIP("10.0.0.2")) {
				t.Errorf("Addresses = %v, want IPv4 first", ev.Info.Addresses)
			}
			if v, _ := ev.Info.Property("td"); v != "/td" {
				t.Errorf("td property = %q, want /td", v)
			}
		})
	}
}

func TestEventKind_String(t *testing.T) {
	if EventResolved.String() != "resolved" {
		t.Errorf("EventResolved.String() = %v", EventResolved.String())
	}
	if EventKind(42).String() != "EventKind(42)" {
		t.Errorf("unknown kind String() = %v", EventKind(42).String())
	}
}

func TestMulticastInterfaces(t *testing.T) {
	ifaces := []net.Interface{
		{Index: 1, Name: "lo", Flags: net.FlagUp | net.FlagLoopback},
		{Index: 2, Name: "eth0", Flags: net.FlagUp | net.FlagMulticast},
		{Index: 3, Name: "eth1", Flags: net.FlagMulticast},
	}

	usable, err := multicastInterfaces(ifaces)
	if err != nil {
		t.Fatalf("multicastInterfaces() error = %v", err)
	}
	if len(usable) != 1 || usable[0].Name != "eth0" {
		t.Errorf("usable = %v, want [eth0]", usable)
	}

	if _, err := multicastInterfaces(ifaces[:1]); err == nil {
		t.Error("expected error when no interface supports multicast")
	}
}
