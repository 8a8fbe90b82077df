// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Defaults applied to every field no source has set.
const (
	DefaultHTTPAddress      = "0.0.0.0:8001"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultTokenAlgorithm   = "HS256"
	DefaultTokenDuration    = 30 * time.Minute
	DefaultPasswordHashCost = 12
	DefaultVersion          = "0.1.0"
	DefaultLogLevel         = "debug"
	DefaultDBPoolSize       = 10
	DefaultDBMaxOverflow    = 20
	DefaultDBRecycle        = 30 * time.Minute
	DefaultDBAcquireTimeout = 30 * time.Second
)

// defaultConfig returns the configuration used to fill unset fields.
// Secrets and the DSN have no defaults and must be provided.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenAlgorithm:   DefaultTokenAlgorithm,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
			Version:          DefaultVersion,
			LogLevel:         DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{
				PoolSize:       DefaultDBPoolSize,
				MaxOverflow:    DefaultDBMaxOverflow,
				Recycle:        DefaultDBRecycle,
				AcquireTimeout: DefaultDBAcquireTimeout,
			},
		},
		Server: Server{
			HTTPAddress:        DefaultHTTPAddress,
			RequestTimeout:     DefaultRequestTimeout,
			ShutdownTimeout:    DefaultShutdownTimeout,
			CORSAllowedOrigins: []string{"*"},
		},
	}
}
