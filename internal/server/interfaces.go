// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract for the transport server managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops,
	// either because of a shutdown signal or a listener failure.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
