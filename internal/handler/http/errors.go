// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself, before a request
// reaches the service layer. Callers can match against them with [errors.Is].
var (
	// ErrInvalidJSON is returned when the request body cannot be decoded into
	// the expected payload.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidGzipBody is returned by the gzip middleware when a request
	// declares Content-Encoding: gzip but the body is not a valid gzip stream.
	ErrInvalidGzipBody = errors.New("invalid gzip data")

	// ErrRouteNotFound is returned for unknown paths and unsupported methods.
	ErrRouteNotFound = errors.New("not found")

	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoAuthenticatedUser is returned when a protected handler runs
	// without the auth middleware having stored a user in the context.
	ErrNoAuthenticatedUser = errors.New("no authenticated user in request context")
)
