package main

import (
	"context"
	"net"
	"net/http"
	"time"
)

// newHTTPServer builds the API server. Request contexts derive from a base
// context that Shutdown cancels, so long-lived event streams end instead of
// holding the shutdown until its deadline.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	base, cancel := context.WithCancel(context.Background())

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	server.RegisterOnShutdown(cancel)
	return server
}
