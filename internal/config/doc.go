// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the user service.
//
// Configuration is assembled from multiple sources in the following priority
// order (the first source that sets a non-zero field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// Boolean fields can only be switched on by a source; a later false never
// overrides an earlier true.
//
// The main entry point is [GetStructuredConfig].
package config
