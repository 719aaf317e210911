// Package discovery finds Web of Things devices on the local network and
// fetches their Thing Descriptions.
//
// Things advertise themselves over multicast DNS service discovery using the
// "_wot._tcp.local." service type. This package browses for that type, turns
// every resolved announcement into an HTTP request for the device's Thing
// Description, and streams the decoded documents back to the caller.
//
// # Discovery Process
//
// For each browse session:
//  1. A zeroconf resolver sends mDNS queries for "_wot._tcp" in "local."
//  2. Resolved announcements are converted into a fetch target:
//     - host: the first advertised address
//     - port: the advertised port
//     - path: the "td" TXT property, or "/.well-known/wot"
//     - scheme: the "scheme" TXT property, else "https" when the legacy "tls"
//     property is "1", else "http"
//  3. Each target is fetched with a single GET in its own goroutine
//  4. Results (records or errors) are delivered in completion order
//
// Lifecycle events other than a resolution are dropped silently.
//
// # Usage Example
//
//	d, err := discovery.New(discovery.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	stream, err := d.Stream(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for rec, err := range stream.All() {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    fmt.Printf("Found %s at %s\n", rec.Thing.Title, rec.URL)
//	}
//
// # Extensions
//
// Extend attaches a typed extension to the documents a Discoverer produces.
// Extensions accumulate; the newest is the head of the list:
//
//	d2 := discovery.Extend[Registration](d)
//	stream, _ := d2.Stream(ctx)
//	r, _ := stream.Next(ctx)
//	fmt.Println(r.Record.Thing.Ext.Head.Registration)
//
// # Errors
//
// Construction failures (no multicast interface, browse failure, HTTP client
// build failure) are returned synchronously. Per-announcement failures are
// delivered inline as Result.Err and never end the stream. No request is
// retried; wrap the stream or open a new one for resilience.
//
// # Network Requirements
//
// - Requires multicast support on at least one interface
// - Things must be on the same link as the browsing host
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// A Discoverer may open any number of streams concurrently. Each Stream is
// meant for a single consumer.
package discovery
