// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the user service.
//
// It exposes route wiring, request handlers, and middleware. Cross-cutting
// concerns such as correlation ids, latency reporting, access logging, panic
// recovery, CORS, compression and bearer authentication are handled here
// before requests are delegated to the service layer. Errors from lower
// layers are translated into status codes by errors_mapper.go.
package http
