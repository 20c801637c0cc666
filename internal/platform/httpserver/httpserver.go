// Package httpserver constructs the HTTP server that fronts the kader API.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. ReadHeaderTimeout bounds slow-header clients;
// request deadlines belong to the handlers and their contexts.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
