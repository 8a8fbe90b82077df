// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-user-service/internal/service"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &service.ValidationError{Field: "email", Reason: "bad"}, want: http.StatusUnprocessableEntity},
		{name: "invalid json", err: fmt.Errorf("%w: unexpected EOF", ErrInvalidJSON), want: http.StatusBadRequest},
		{name: "duplicate", err: service.ErrEmailAlreadyRegistered, want: http.StatusBadRequest},
		{name: "store duplicate", err: store.ErrEmailAlreadyExists, want: http.StatusBadRequest},
		{name: "not found", err: service.ErrUserNotFound, want: http.StatusNotFound},
		{name: "store not found", err: store.ErrNoUserWasFound, want: http.StatusNotFound},
		{name: "forbidden", err: service.ErrForbidden, want: http.StatusForbidden},
		{name: "credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "unauthorized", err: fmt.Errorf("%w: %w", service.ErrUnauthorized, utils.ErrInvalidToken), want: http.StatusUnauthorized},
		{name: "missing header", err: ErrEmptyAuthorizationHeader, want: http.StatusUnauthorized},
		{name: "unavailable", err: fmt.Errorf("%w: %w", store.ErrExecutingQuery, store.ErrDatabaseUnavailable), want: http.StatusServiceUnavailable},
		{name: "query error", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestDetailFromError_HidesServerErrors(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", store.ErrDatabaseUnavailable)

	assert.Equal(t, "Service Unavailable", detailFromError(err))
	assert.Equal(t, "Internal Server Error", detailFromError(errors.New("secret internals")))
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(utils.WithRequestID(req.Context(), "abc"))

	t.Run("401 carries challenge", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeError(rr, req, service.ErrUnauthorized)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Could not validate credentials","request_id":"abc"}`, rr.Body.String())
	})

	t.Run("403 has no challenge", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeError(rr, req, service.ErrForbidden)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Not enough permissions","request_id":"abc"}`, rr.Body.String())
	})
}
