// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// stringList is a comma separated flag.Value.
type stringList []string

// ParseFlags parses configuration flags from args (normally os.Args[1:]).
// A fresh [flag.FlagSet] is used on every call, so the function can be
// invoked more than once in the same process.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origins comma separated list of allowed CORS origins
//	-d database DSN
//	-db-pool-size idle connections kept in the pool
//	-db-max-overflow extra connections allowed under load
//	-db-recycle maximum connection lifetime (e.g., "30m")
//	-db-acquire-timeout store operation timeout (e.g., "30s")
//	-db-echo log every SQL statement
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-algorithm token signing algorithm (HS256, HS384, HS512)
//	-token-duration token duration (e.g., "1h", "30m")
//	-password-hash-cost bcrypt work factor
//	-version application version
//	-log-level log level (debug, info, warn, error)
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("user-service", flag.ContinueOnError)

	var serverAddress NetAddress
	var requestTimeout, shutdownTimeout time.Duration
	var corsOrigins stringList
	var databaseDSN string
	var poolSize, maxOverflow int
	var recycle, acquireTimeout time.Duration
	var echo bool
	var jsonConfigPath string
	var tokenSignKey, tokenAlgorithm string
	var tokenDuration time.Duration
	var passwordHashCost int
	var version, logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")
	fs.Var(&corsOrigins, "cors-origins", "Comma separated allowed CORS origins")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.IntVar(&poolSize, "db-pool-size", 0, "Idle connections kept in the pool")
	fs.IntVar(&maxOverflow, "db-max-overflow", 0, "Extra connections allowed under load")
	fs.DurationVar(&recycle, "db-recycle", 0, "Maximum connection lifetime (e.g., 30m)")
	fs.DurationVar(&acquireTimeout, "db-acquire-timeout", 0, "Store operation timeout (e.g., 30s)")
	fs.BoolVar(&echo, "db-echo", false, "Log every SQL statement")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenAlgorithm, "token-algorithm", "", "Token signing algorithm (HS256, HS384, HS512)")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt work factor")
	fs.StringVar(&version, "version", "", "Application version")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenAlgorithm:   tokenAlgorithm,
			TokenDuration:    tokenDuration,
			PasswordHashCost: passwordHashCost,
			Version:          version,
			LogLevel:         logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:            databaseDSN,
				PoolSize:       poolSize,
				MaxOverflow:    maxOverflow,
				Recycle:        recycle,
				AcquireTimeout: acquireTimeout,
				Echo:           echo,
			},
		},
		Server: Server{
			HTTPAddress:        serverAddress.String(),
			RequestTimeout:     requestTimeout,
			ShutdownTimeout:    shutdownTimeout,
			CORSAllowedOrigins: corsOrigins,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}
