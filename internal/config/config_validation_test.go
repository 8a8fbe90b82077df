// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/users"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "lowercase algorithm", mutate: func(cfg *StructuredConfig) { cfg.App.TokenAlgorithm = "hs512" }},
		{name: "empty address", mutate: func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "zero request timeout", mutate: func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 }, wantErr: ErrInvalidServerConfigs},
		{name: "empty dsn", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero pool", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.PoolSize = 0 }, wantErr: ErrInvalidStorageConfigs},
		{name: "negative overflow", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.MaxOverflow = -1 }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero acquire timeout", mutate: func(cfg *StructuredConfig) { cfg.Storage.DB.AcquireTimeout = 0 }, wantErr: ErrInvalidStorageConfigs},
		{name: "empty sign key", mutate: func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "asymmetric algorithm", mutate: func(cfg *StructuredConfig) { cfg.App.TokenAlgorithm = "RS256" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative token duration", mutate: func(cfg *StructuredConfig) { cfg.App.TokenDuration = -time.Second }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too low", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 2 }, wantErr: ErrInvalidAppConfigs},
		{name: "cost too high", mutate: func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 40 }, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
