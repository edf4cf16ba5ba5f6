// Package app assembles the application: configuration, logging, the
// SQLite store, services, the chi router and the HTTP server with
// graceful shutdown.
package app
