// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned by [ValidateAndParseJWTToken] for every
	// kind of verification failure: bad signature, unexpected algorithm,
	// missing or passed expiry, missing subject or malformed input.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnsupportedSigningMethod is returned by [SigningMethod] for any
	// algorithm other than the HMAC family.
	ErrUnsupportedSigningMethod = errors.New("unsupported token signing method")
)

// supportedSigningMethods lists the symmetric algorithms the service can be
// configured with. Asymmetric algorithms are rejected because only a shared
// secret is configured.
var supportedSigningMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// SigningMethod resolves an algorithm name ("HS256", "HS384", "HS512") to
// its jwt.SigningMethod.
func SigningMethod(alg string) (jwt.SigningMethod, error) {
	method, ok := supportedSigningMethods[strings.ToUpper(alg)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, alg)
	}
	return method, nil
}

// GenerateJWTToken creates a signed JWT token for the given subject.
//
// The token includes the following standard claims:
//   - Subject   (sub): the user email
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// All timestamps are normalised to UTC. A zero or negative tokenDuration
// produces a token that is already expired and never passes
// [ValidateAndParseJWTToken].
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("a@x.com", 30*time.Minute, "secret", jwt.SigningMethodHS256, time.Now())
func GenerateJWTToken(subject string, tokenDuration time.Duration, signKey string, method jwt.SigningMethod, now time.Time) (models.Token, error) {
	if subject == "" || signKey == "" || method == nil {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now = now.UTC()
	expiresAt := now.Add(tokenDuration)
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		Email:        subject,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Algorithm pinning: only method is accepted
//   - Expiration (exp) claim presence and check against now().UTC()
//   - Subject (sub) claim presence
//
// Every failure is reported as [ErrInvalidToken] wrapping the cause.
func ValidateAndParseJWTToken(tokenString, signKey string, method jwt.SigningMethod, now func() time.Time) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now().UTC() }),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		Email:        claims.Subject,
		ExpiresAt:    claims.ExpiresAt.Time.UTC(),
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
