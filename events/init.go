// Package events owns the server-sent event stream that pushes accepted
// song updates out to any listening widgets.
package events

import "github.com/r3labs/sse/v2"

var Server *sse.Server

// Init must run before routes are registered. Replay is off because a
// freshly connected widget fetches the current song over the API anyway.
func Init() {
	server := sse.New()
	server.AutoReplay = false
	Server = server
}
