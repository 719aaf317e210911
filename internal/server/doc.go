// Package server publishes the results of a discovery session to other
// programs.
//
// A Server keeps every Thing published to it and exposes them
// over plain HTTP and a WebSocket feed:
//
//	GET /things   JSON array of the Things found so far
//	GET /status   session counters (things, errors, done, clients)
//	GET /events   WebSocket feed of updates
//
// Each feed message is a JSON object with a "type" of "thing", "error" or
// "done". A client that connects late first receives every Thing found so
// far, then live updates. Clients that fall too far behind are dropped.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{Port: 8080}, logger)
//	if err != nil {
//	    return err
//	}
//	go srv.Start(ctx)
//	srv.Publish(server.Update{Type: server.UpdateThing, Thing: doc})
//
// When CertPath and KeyPath are set the server speaks https, with TLS 1.2
// as the minimum version.
package server
