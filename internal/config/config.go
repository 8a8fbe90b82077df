// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the user
// service. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, an optional JSON
// file and finally the built-in defaults.
//
// The value is built once in main and passed by reference to the
// constructors that need it; no package keeps a copy of its own.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network, timeout and CORS settings of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the shared secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenAlgorithm is the symmetric JWT algorithm: HS256, HS384 or HS512.
	// Env: APP_TOKEN_ALGORITHM
	TokenAlgorithm string `env:"TOKEN_ALGORITHM"`

	// TokenDuration specifies how long an access token remains valid after
	// issuance (e.g. "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel narrows the server logger ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection and pool settings for the relational database.
type DB struct {
	// DSN is the Data Source Name. Its scheme selects the driver:
	// postgres:// and postgresql:// use pgx, sqlite:// and file: use SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// PoolSize is the number of connections kept idle in the pool.
	// Env: STORAGE_DB_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`

	// MaxOverflow is the number of connections that may be opened on top of
	// PoolSize under load. They are closed once released.
	// Env: STORAGE_DB_MAX_OVERFLOW
	MaxOverflow int `env:"MAX_OVERFLOW"`

	// Recycle is the maximum lifetime of a pooled connection.
	// Env: STORAGE_DB_RECYCLE
	Recycle time.Duration `env:"RECYCLE"`

	// AcquireTimeout bounds every store operation, connection acquisition
	// included. An exhausted pool fails after this long instead of hanging.
	// Env: STORAGE_DB_ACQUIRE_TIMEOUT
	AcquireTimeout time.Duration `env:"ACQUIRE_TIMEOUT"`

	// Echo logs every SQL statement at debug level.
	// Env: STORAGE_DB_ECHO
	Echo bool `env:"ECHO"`
}

// MaxOpenConns is the hard upper bound of simultaneously open connections.
func (db DB) MaxOpenConns() int {
	return db.PoolSize + db.MaxOverflow
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8001").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading a request and writing its response.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSAllowedOrigins lists the origins allowed by the CORS middleware.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (the first source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
