// Package daemon runs the long-lived mediashelf API server.
//
// It binds the gin handler from package api to the configured address and
// holds a flock on the data directory so two servers never share one catalog
// database. Start and Stop may be called repeatedly; each Start builds a fresh
// http.Server.
package daemon
