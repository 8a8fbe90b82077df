// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the user service REST API.
//
// The primary abstraction is [UserServiceClient], which hides routes, JSON
// encoding and bearer-token handling from callers. Error responses are mapped
// from HTTP status codes by mapHTTPError so that callers can use [errors.Is]
// (e.g. [ErrConflict] for a duplicate email, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

// UserServiceClient talks to a running user service over HTTP.
type UserServiceClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Login calls it on success.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account via POST /auth/register.
	Register(ctx context.Context, req models.CreateUserRequest) (models.User, error)

	// Login exchanges credentials for an access token and stores it.
	Login(ctx context.Context, req models.LoginRequest) (models.AccessTokenResponse, error)

	// Me returns the user the stored token belongs to.
	Me(ctx context.Context) (models.User, error)

	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	ListUsers(ctx context.Context, page models.Page) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Health calls GET /health, which lives outside the API prefix.
	Health(ctx context.Context) (models.HealthResponse, error)
}
