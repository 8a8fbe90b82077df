// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command healthcheck probes GET /health of a running user service and exits
// non-zero when it is not healthy. It is meant for container health checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-user-service/internal/adapter"
)

func main() {
	url := flag.String("url", "http://127.0.0.1:8001", "base URL of the user service")
	timeout := flag.Duration("timeout", 3*time.Second, "request timeout")
	flag.Parse()

	if err := check(*url, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(baseURL string, timeout time.Duration) error {
	client, err := adapter.NewHTTPUserServiceClient(baseURL, timeout)
	if err != nil {
		return err
	}

	health, err := client.Health(context.Background())
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}

	if health.Status != "healthy" {
		return fmt.Errorf("service unhealthy: status %q", health.Status)
	}

	return nil
}
