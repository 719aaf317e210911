package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the DNS-SD service type Things advertise under
	ServiceType = "_wot._tcp.local."

	// eventBuffer is the capacity of the channels between zeroconf and the stream
	eventBuffer = 32
)

// EventKind identifies an announcement lifecycle event
type EventKind int

const (
	// EventSearchStarted is emitted once when a browse session begins
	EventSearchStarted EventKind = iota
	// EventFound reports a service instance whose records are not yet complete
	EventFound
	// EventResolved reports a service with host, port, addresses and TXT data
	EventResolved
	// EventRemoved reports a goodbye (TTL 0) announcement. The zeroconf
	// browser never emits it because the library drops expired entries;
	// injected Browsers may.
	EventRemoved
	// EventSearchStopped is emitted when the browse session ends
	EventSearchStopped
)

// String returns the event name
func (k EventKind) String() string {
	switch k {
	case EventSearchStarted:
		return "search_started"
	case EventFound:
		return "found"
	case EventResolved:
		return "resolved"
	case EventRemoved:
		return "removed"
	case EventSearchStopped:
		return "search_stopped"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// ServiceInfo is the raw network-level information of an announcement
type ServiceInfo struct {
	// Instance is the service instance name (e.g., "MyLampThing")
	Instance string

	// Service and Domain make up the service type (e.g., "_wot._tcp", "local.")
	Service string
	Domain  string

	// HostName is the mDNS hostname (e.g., "lamp.local.")
	HostName string

	// Port is the advertised TCP port
	Port int

	// Addresses lists the advertised addresses in announcement order
	Addresses []net.IP

	// Text holds the raw TXT strings
	Text []string

	// Properties is Text parsed into key/value pairs
	Properties map[string]string

	// TTL is the record time-to-live in seconds
	TTL uint32
}

// Property returns a TXT property value and whether it was present
func (s *ServiceInfo) Property(key string) (string, bool) {
	if s.Properties == nil {
		return "", false
	}
	v, ok := s.Properties[key]
	return v, ok
}

// Event is a single announcement delivered by a Browser
type Event struct {
	Kind EventKind
	Info *ServiceInfo
}

// Browser opens browse sessions on the service-discovery protocol.
// Each call returns an independent event channel that is closed when the
// session ends; sessions end when ctx is canceled.
type Browser interface {
	Browse(ctx context.Context, service, domain string) (<-chan Event, error)
}

// splitServiceType separates "_wot._tcp.local." into "_wot._tcp" and "local."
func splitServiceType(serviceType string) (service, domain string) {
	parts := strings.SplitN(serviceType, ".", 3)
	if len(parts) < 3 {
		return serviceType, ""
	}
	return parts[0] + "." + parts[1], parts[2]
}

// parseTXT converts TXT strings into a property map.
// Keys are case-insensitive and stored lower-cased. A key without "=" maps to
// the empty string; the first occurrence of a key wins.
func parseTXT(text []string) map[string]string {
	props := make(map[string]string, len(text))
	for _, txt := range text {
		if txt == "" {
			continue
		}
		parts := strings.SplitN(txt, "=", 2)
		key := strings.ToLower(parts[0])
		if _, seen := props[key]; seen {
			continue
		}
		if len(parts) == 2 {
			props[key] = parts[1]
		} else {
			props[key] = ""
		}
	}
	return props
}

// zeroconfBrowser browses with github.com/grandcat/zeroconf.
// Every Browse creates its own resolver so sessions never share sockets.
type zeroconfBrowser struct {
	opts []zeroconf.ClientOption
}

// newZeroconfBrowser checks that at least one interface can carry multicast
// traffic before any session is opened
func newZeroconfBrowser(ifaces []net.Interface, ipType zeroconf.IPType) (*zeroconfBrowser, error) {
	usable, err := multicastInterfaces(ifaces)
	if err != nil {
		return nil, err
	}

	opts := []zeroconf.ClientOption{zeroconf.SelectIfaces(usable)}
	if ipType != 0 {
		opts = append(opts, zeroconf.SelectIPTraffic(ipType))
	}
	return &zeroconfBrowser{opts: opts}, nil
}

// Browse starts a zeroconf browse and converts its entries into events
func (b *zeroconfBrowser) Browse(ctx context.Context, service, domain string) (<-chan Event, error) {
	resolver, err := zeroconf.NewResolver(b.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, eventBuffer)
	if err := resolver.Browse(ctx, service, domain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	events := make(chan Event, eventBuffer)
	go func() {
		defer close(events)

		send := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(Event{Kind: EventSearchStarted}) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					// zeroconf closes entries when the session ends; the
					// consumer may already be gone, so don't block on it
					select {
					case events <- Event{Kind: EventSearchStopped}:
					default:
					}
					return
				}
				if !send(eventFromEntry(entry)) {
					return
				}
			}
		}
	}()

	return events, nil
}

// eventFromEntry converts a zeroconf service entry into an announcement event.
// zeroconf v1.0.0 filters TTL 0 entries before they reach the channel, so the
// EventRemoved case only fires for entries built outside the library.
func eventFromEntry(entry *zeroconf.ServiceEntry) Event {
	addrs := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	addrs = append(addrs, entry.AddrIPv4...)
	addrs = append(addrs, entry.AddrIPv6...)

	info := &ServiceInfo{
		Instance:   entry.Instance,
		Service:    entry.Service,
		Domain:     entry.Domain,
		HostName:   entry.HostName,
		Port:       entry.Port,
		Addresses:  addrs,
		Text:       entry.Text,
		Properties: parseTXT(entry.Text),
		TTL:        entry.TTL,
	}

	switch {
	case entry.TTL == 0:
		return Event{Kind: EventRemoved, Info: info}
	case entry.HostName == "" && entry.Port == 0:
		return Event{Kind: EventFound, Info: info}
	default:
		return Event{Kind: EventResolved, Info: info}
	}
}

// multicastInterfaces returns the interfaces that are up and multicast
// capable. A nil input means all system interfaces.
func multicastInterfaces(ifaces []net.Interface) ([]net.Interface, error) {
	if ifaces == nil {
		var err error
		ifaces, err = net.Interfaces()
		if err != nil {
			return nil, fmt.Errorf("failed to list network interfaces: %w", err)
		}
	}

	usable := make([]net.Interface, 0, len(ifaces))
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		usable = append(usable, ifi)
	}

	if len(usable) == 0 {
		return nil, fmt.Errorf("no multicast-capable network interface is up")
	}
	return usable, nil
}
