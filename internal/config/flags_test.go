// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty", addr: NetAddress{}, expected: ""},
		{name: "localhost", addr: NetAddress{Host: "localhost", Port: 8001}, expected: "localhost:8001"},
		{name: "ip", addr: NetAddress{Host: "0.0.0.0", Port: 80}, expected: "0.0.0.0:80"},
		{name: "port only", addr: NetAddress{Port: 9000}, expected: ":9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8080",
			expectedAddr: NetAddress{Host: "localhost", Port: 8080},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:         "all interfaces",
			input:        "0.0.0.0:8001",
			expectedAddr: NetAddress{Host: "0.0.0.0", Port: 8001},
		},
		{
			name:        "missing colon",
			input:       "localhost8080",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non numeric port",
			input:       "localhost:http",
			expectError: true,
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number must be between 1 and 65535",
		},
		{
			name:        "port too large",
			input:       "localhost:70000",
			expectError: true,
			errorMsg:    "port number must be between 1 and 65535",
		},
		{
			name:        "hostname is not an ip",
			input:       "example.com:80",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				require.Error(t, err)
				if tt.errorMsg != "" {
					assert.Equal(t, tt.errorMsg, err.Error())
				}
				assert.Equal(t, NetAddress{}, addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	args := []string{
		"-a", "127.0.0.1:9000",
		"-request-timeout", "10s",
		"-shutdown-timeout", "3s",
		"-cors-origins", "https://a.example, https://b.example",
		"-d", "postgres://localhost/users",
		"-db-pool-size", "4",
		"-db-max-overflow", "2",
		"-db-recycle", "5m",
		"-db-acquire-timeout", "1s",
		"-db-echo",
		"-config", "/tmp/cfg.json",
		"-token-sign-key", "secret",
		"-token-algorithm", "HS384",
		"-token-duration", "45m",
		"-password-hash-cost", "11",
		"-version", "2.0.0",
		"-log-level", "warn",
	}

	cfg, err := ParseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)

	assert.Equal(t, "postgres://localhost/users", cfg.Storage.DB.DSN)
	assert.Equal(t, 4, cfg.Storage.DB.PoolSize)
	assert.Equal(t, 2, cfg.Storage.DB.MaxOverflow)
	assert.Equal(t, 5*time.Minute, cfg.Storage.DB.Recycle)
	assert.Equal(t, time.Second, cfg.Storage.DB.AcquireTimeout)
	assert.True(t, cfg.Storage.DB.Echo)

	assert.Equal(t, "/tmp/cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "HS384", cfg.App.TokenAlgorithm)
	assert.Equal(t, 45*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 11, cfg.App.PasswordHashCost)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "warn", cfg.App.LogLevel)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := ParseFlags([]string{"-c", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestParseFlags_Repeatable verifies that the function can be called more than
// once without redefinition panics.
func TestParseFlags_Repeatable(t *testing.T) {
	for range 3 {
		cfg, err := ParseFlags([]string{"-d", "sqlite://users.db"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite://users.db", cfg.Storage.DB.DSN)
	}
}

func TestParseFlags_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad address", args: []string{"-a", "not-an-address"}},
		{name: "bad duration", args: []string{"-token-duration", "soon"}},
		{name: "bad int", args: []string{"-db-pool-size", "many"}},
		{name: "unknown flag", args: []string{"-unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "error parsing flags")
		})
	}
}

func TestNetAddress_SetAndString(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:8001"))
	assert.Equal(t, "localhost:8001", addr.String())
}
