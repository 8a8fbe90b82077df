// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-user-service/internal/logger"
)

// withRecover turns a panic in any inner handler into a logged error and a
// JSON 500 response carrying the request id. If the handler already started
// the response, only the log entry is produced.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromRequest(r).Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			if !rw.wroteHeader {
				writeError(rw, r, fmt.Errorf("panic: %v", rec))
			}
		}()

		next.ServeHTTP(rw, r)
	})
}
