// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"time"
)

const processTimeHeader = "X-Process-Time"

// withProcessTime reports the wall-clock seconds spent on the request in the
// X-Process-Time header. The value is taken when the status line is written,
// because headers cannot change afterwards.
func withProcessTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pw := &processTimeWriter{
			ResponseWriter: w,
			start:          time.Now(),
		}

		next.ServeHTTP(pw, r)

		// nothing was written: net/http sends an implicit 200 after return
		if !pw.wroteHeader {
			pw.setHeader()
		}
	})
}

type processTimeWriter struct {
	http.ResponseWriter

	start       time.Time
	wroteHeader bool
}

func (w *processTimeWriter) setHeader() {
	elapsed := time.Since(w.start).Seconds()
	w.Header().Set(processTimeHeader, fmt.Sprintf("%.4f", elapsed))
}

func (w *processTimeWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.setHeader()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *processTimeWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *processTimeWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
