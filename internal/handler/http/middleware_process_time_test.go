// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var processTimeFormat = regexp.MustCompile(`^\d+\.\d{4}$`)

func TestWithProcessTime(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte("{}"))
			},
		},
		{
			name: "implicit status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{}"))
			},
		},
		{
			name:    "nothing written",
			handler: func(w http.ResponseWriter, r *http.Request) {},
		},
		{
			name: "no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			withProcessTime(tt.handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Regexp(t, processTimeFormat, rr.Header().Get(processTimeHeader))
		})
	}
}

func TestWithProcessTime_MeasuresHandler(t *testing.T) {
	delay := 20 * time.Millisecond
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	withProcessTime(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	seconds, err := strconv.ParseFloat(rr.Header().Get(processTimeHeader), 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seconds, delay.Seconds()-0.0001)
}
