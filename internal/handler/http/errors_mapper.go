// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

type errorStatus struct {
	target error
	status int
	detail string
}

// errorStatuses is matched in order, so more specific errors come first: an
// error chain may contain both a domain sentinel and a low-level store error.
var errorStatuses = []errorStatus{
	{target: service.ErrValidation, status: http.StatusUnprocessableEntity},
	{target: ErrInvalidJSON, status: http.StatusBadRequest, detail: "Invalid JSON was passed"},
	{target: ErrInvalidGzipBody, status: http.StatusBadRequest, detail: "Invalid gzip data"},
	{target: ErrRouteNotFound, status: http.StatusNotFound, detail: "Not Found"},

	{target: service.ErrEmailAlreadyRegistered, status: http.StatusBadRequest, detail: "Email already registered"},
	{target: service.ErrUserNotFound, status: http.StatusNotFound, detail: "User not found"},
	{target: service.ErrForbidden, status: http.StatusForbidden, detail: "Not enough permissions"},
	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, detail: "Incorrect email or password"},
	{target: service.ErrUnauthorized, status: http.StatusUnauthorized, detail: "Could not validate credentials"},
	{target: utils.ErrInvalidToken, status: http.StatusUnauthorized, detail: "Could not validate credentials"},
	{target: ErrEmptyAuthorizationHeader, status: http.StatusUnauthorized, detail: "Not authenticated"},
	{target: ErrInvalidAuthorizationHeader, status: http.StatusUnauthorized, detail: "Not authenticated"},
	{target: ErrNoAuthenticatedUser, status: http.StatusUnauthorized, detail: "Could not validate credentials"},

	{target: store.ErrEmailAlreadyExists, status: http.StatusBadRequest, detail: "Email already registered"},
	{target: store.ErrNoUserWasFound, status: http.StatusNotFound, detail: "User not found"},
	{target: store.ErrDatabaseUnavailable, status: http.StatusServiceUnavailable},
}

func lookupError(err error) errorStatus {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e
		}
	}
	return errorStatus{status: http.StatusInternalServerError}
}

func statusFromError(err error) int {
	return lookupError(err).status
}

// detailFromError returns the client-facing message for err. Server errors
// never expose their cause.
func detailFromError(err error) string {
	e := lookupError(err)
	if e.status >= http.StatusInternalServerError {
		return http.StatusText(e.status)
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	if e.detail != "" {
		return e.detail
	}
	return http.StatusText(e.status)
}

// writeError logs err with the request logger and writes the JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	resp := models.ErrorResponse{
		Detail:    detailFromError(err),
		RequestID: utils.GetRequestIDFromContext(r.Context()),
	}
	if _, err = utils.WriteJSON(w, resp, status); err != nil {
		log.Err(err).Msg("error writing error response")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrRouteNotFound)
}
