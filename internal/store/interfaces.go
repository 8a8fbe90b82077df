// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists [models.User] records.
//
// Every method is bounded by the database acquire timeout. A timeout or a
// lost connection is reported as [ErrDatabaseUnavailable].
type UserRepository interface {
	// CreateUser inserts user and returns it with ID populated.
	// Returns [ErrEmailAlreadyExists] when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByID returns [ErrNoUserWasFound] when no row matches.
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	// FindUserByEmail returns [ErrNoUserWasFound] when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// ListUsers returns users ordered by ID.
	ListUsers(ctx context.Context, page models.Page) ([]models.User, error)
	// UpdateUser overwrites every mutable column of the row with user.ID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	// DeleteUser removes the row with id.
	DeleteUser(ctx context.Context, id int64) error
}

// ErrorClassificator classifies driver errors independently of the dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
