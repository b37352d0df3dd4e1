// Package http implements the HTTP transport layer of the artifact server.
//
// It exposes route wiring, request handlers, and middleware used by the sync
// API. Cross-cutting concerns such as per-client rate limiting, request
// tracing, access logging, response compression, and request/error counting
// are handled in this package before requests are delegated to the service
// layer.
package http
