// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers registration, credential checks and the bearer token
// lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// ResolveSession maps a bearer token to the user it was issued for.
	// Any failure to do so is reported as ErrUnauthorized.
	ResolveSession(ctx context.Context, tokenString string) (models.User, error)
}

// UserService applies the business rules on top of the user store.
type UserService interface {
	CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, page models.Page) ([]models.User, error)
	// UpdateUser and DeleteUser check existence before ownership: a missing
	// user is ErrUserNotFound even when requester could never touch it.
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate, requester models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64, requester models.User) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// PasswordHasher is implemented by [utils.BcryptHasher].
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
