// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository store.UserRepository
	hasher         PasswordHasher
	now            func() time.Time

	logger *logger.Logger
}

// NewUserService constructs a UserService. A nil now falls back to
// time.Now. Timestamps are always stored in UTC.
func NewUserService(userRepository store.UserRepository, hasher PasswordHasher, now func() time.Time, logger *logger.Logger) UserService {
	if now == nil {
		now = time.Now
	}
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		now:            now,
		logger:         logger,
	}
}

// CreateUser validates the request, hashes the password and persists the
// user with created_at and updated_at set to the same instant.
//
// Returns the stored user or:
//   - a *ValidationError (matching ErrValidation) for bad input.
//   - ErrEmailAlreadyRegistered if the email is taken.
func (s *userService) CreateUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCreateUserRequest(request); err != nil {
		log.Debug().Err(err).Str("func", "*userService.CreateUser").Msg("invalid user data provided")
		return models.User{}, err
	}

	request.Email = normalizeEmail(request.Email)

	hash, err := s.hasher.Hash(request.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := s.now().UTC()
	created, err := s.userRepository.CreateUser(ctx, models.User{
		Email:          request.Email,
		HashedPassword: hash,
		Name:           request.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Str("email", request.Email).Msg("user creation ended with error")
		return models.User{}, mapStoreError(err)
	}

	log.Info().Str("func", "*userService.CreateUser").Int64("user_id", created.ID).Msg("user created")
	return created, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.userRepository.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, mapStoreError(err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}

	users, err := s.userRepository.ListUsers(ctx, page)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of update to the user with id.
//
// The user must exist (ErrUserNotFound) and be requester (ErrForbidden), in
// that order. A new password is rehashed. updated_at is refreshed even when
// update carries no field.
func (s *userService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate, requester models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	if requester.ID != user.ID {
		log.Warn().Str("func", "*userService.UpdateUser").
			Int64("user_id", id).
			Int64("requester_id", requester.ID).
			Msg("update of another user rejected")
		return models.User{}, ErrForbidden
	}

	if err = validateUserUpdate(update); err != nil {
		return models.User{}, err
	}

	if update.IsEmpty() {
		log.Debug().Str("func", "*userService.UpdateUser").Int64("user_id", id).Msg("update carries no field, refreshing updated_at only")
	}

	if update.Email != nil {
		user.Email = normalizeEmail(*update.Email)
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.UpdateUser").Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.HashedPassword = hash
	}
	user.UpdatedAt = s.now().UTC()

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateUser").Int64("user_id", id).Msg("user update ended with error")
		return models.User{}, mapStoreError(err)
	}

	return updated, nil
}

// DeleteUser removes the user with id. Errors follow UpdateUser.
func (s *userService) DeleteUser(ctx context.Context, id int64, requester models.User) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return mapStoreError(err)
	}

	if requester.ID != user.ID {
		log.Warn().Str("func", "*userService.DeleteUser").
			Int64("user_id", id).
			Int64("requester_id", requester.ID).
			Msg("deletion of another user rejected")
		return ErrForbidden
	}

	if err = s.userRepository.DeleteUser(ctx, id); err != nil {
		log.Err(err).Str("func", "*userService.DeleteUser").Int64("user_id", id).Msg("user deletion ended with error")
		return mapStoreError(err)
	}

	log.Info().Str("func", "*userService.DeleteUser").Int64("user_id", id).Msg("user deleted")
	return nil
}

// mapStoreError translates store sentinels into service ones. Errors
// without a service meaning (an unavailable database among them) pass
// through unchanged.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fmt.Errorf("%w: %w", ErrEmailAlreadyRegistered, err)
	default:
		return err
	}
}
