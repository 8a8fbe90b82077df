// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/utils"
)

const (
	requestIDHeader = "X-Request-ID"

	// maxRequestIDLength caps inbound identifiers so a client cannot inflate
	// every log line of the request.
	maxRequestIDLength = 128
)

// withRequestID tags the request with a correlation identifier. An inbound
// X-Request-ID is reused, otherwise a UUID v7 is generated. The identifier is
// stored in the context, attached to the request logger and echoed on the
// response.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = h.requestIDs.Generate()
		}

		ctx = utils.WithRequestID(ctx, requestID)
		l := h.logger.WithRequestID(requestID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}
