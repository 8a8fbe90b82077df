// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/utils"
)

// requestIDGenerator produces fresh correlation identifiers for requests that
// arrive without an X-Request-ID header.
type requestIDGenerator interface {
	Generate() string
}

type Handler struct {
	services *service.Services
	cfg      config.Server

	requestIDs requestIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		cfg:        cfg,
		requestIDs: utils.NewUUIDGenerator(),
		logger:     logger,
	}
}
