// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid. Each is wrapped with the
// offending field so callers can match on the group with errors.Is.
var (
	// ErrInvalidServerConfigs indicates invalid HTTP server settings
	// (for example, empty address or non-positive request timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or a negative pool size).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key or an unsupported algorithm).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
