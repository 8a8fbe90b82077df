// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/go-resty/resty/v2"
)

const emailAlreadyRegisteredDetail = "Email already registered"

// APIError carries the decoded error body next to the status code.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string

	kind error
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("http %d: %s (request_id=%s)", e.StatusCode, e.Detail, e.RequestID)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
		apiErr.RequestID = body.RequestID
	} else {
		apiErr.Detail = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		apiErr.kind = ErrBadRequest
		if apiErr.Detail == emailAlreadyRegisteredDetail {
			apiErr.kind = ErrConflict
		}
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	case http.StatusForbidden:
		apiErr.kind = ErrForbidden
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusUnprocessableEntity:
		apiErr.kind = ErrValidation
	case http.StatusServiceUnavailable:
		apiErr.kind = ErrServiceUnavailable
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			apiErr.kind = ErrInternalServerError
		}
	}

	return apiErr
}
