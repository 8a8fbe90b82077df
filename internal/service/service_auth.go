// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

// timingPassword is hashed once and compared against when a login names an
// unknown email, so both failure paths cost one bcrypt comparison.
const timingPassword = "timing-equalisation-password"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for lookups and a PasswordHasher for
// password comparison.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// userService owns registration so that both creation paths share
	// validation and hashing.
	userService UserService

	hasher PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// signingMethod is the only algorithm tokens are signed with and
	// accepted in.
	signingMethod jwt.SigningMethod

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and populated with token parameters from cfg. A nil now falls back to
// time.Now.
//
// Returns an error if cfg names an unsupported signing algorithm.
func NewAuthService(userRepository store.UserRepository, userService UserService, hasher PasswordHasher, cfg config.App, now func() time.Time, logger *logger.Logger) (AuthService, error) {
	method, err := utils.SigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}

	return &authService{
		userRepository: userRepository,
		userService:    userService,
		hasher:         hasher,
		tokenSignKey:   cfg.TokenSignKey,
		signingMethod:  method,
		tokenDuration:  cfg.TokenDuration,
		now:            now,
		logger:         logger,
	}, nil
}

// RegisterUser creates a new user account. It behaves exactly like
// UserService.CreateUser.
func (a *authService) RegisterUser(ctx context.Context, request models.CreateUserRequest) (models.User, error) {
	return a.userService.CreateUser(ctx, request)
}

// Login authenticates an existing user by email and password.
//
// Returns the authenticated user record or:
//   - ErrInvalidCredentials for an unknown email or a wrong password. Both
//     cases perform one password comparison.
//   - the storage error if the lookup fails for any other reason.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(request.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(request.Password, a.timingHash())
		log.Info().Str("func", "*authService.Login").Msg("login with unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(request.Password, foundUser.HashedPassword) {
		log.Info().Str("func", "*authService.Login").Int64("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT whose subject is the user email.
//
// Returns the token model on success or a wrapped ErrTokenCreationFailed.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(user.Email, a.tokenDuration, a.tokenSignKey, a.signingMethod, a.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateToken").Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string. Any validation failure (expired,
// wrong algorithm, bad signature, malformed) is normalised to
// ErrUnauthorized so that callers do not need to inspect low-level JWT
// errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.signingMethod, a.now)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return token, nil
}

// ResolveSession verifies tokenString and loads the user named by its
// subject. There is no caching: every call reads the store once.
func (a *authService) ResolveSession(ctx context.Context, tokenString string) (models.User, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, token.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		logger.FromContext(ctx).Info().Str("func", "*authService.ResolveSession").Msg("token subject no longer exists")
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (a *authService) timingHash() string {
	a.dummyHashOnce.Do(func() {
		hash, err := a.hasher.Hash(timingPassword)
		if err != nil {
			a.logger.Err(err).Str("func", "*authService.timingHash").Msg("error hashing timing password")
			return
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}
