// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mcnijman/go-emailaddress"

	"github.com/MKhiriev/go-user-service/models"
)

const (
	maxEmailLength    = 255
	minPasswordLength = 8
	minNameLength     = 1
	maxNameLength     = 100
)

func validateCreateUserRequest(request models.CreateUserRequest) error {
	if err := validateEmail(request.Email); err != nil {
		return err
	}
	if err := validatePassword(request.Password); err != nil {
		return err
	}
	return validateName(request.Name)
}

func validateUserUpdate(update models.UserUpdate) error {
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return err
		}
	}
	if update.Password != nil {
		if err := validatePassword(*update.Password); err != nil {
			return err
		}
	}
	if update.Name != nil {
		return validateName(*update.Name)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "field required")
	}
	if len(email) > maxEmailLength {
		return invalid("email", fmt.Sprintf("must be at most %d characters", maxEmailLength))
	}
	if strings.TrimSpace(email) != email {
		return invalid("email", "must not contain surrounding whitespace")
	}
	if _, err := emailaddress.Parse(email); err != nil {
		return invalid("email", "value is not a valid email address")
	}
	return nil
}

// normalizeEmail lowercases the domain part of email. The local part is kept
// as given.
func normalizeEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return nil
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return invalid("name", fmt.Sprintf("must be between %d and %d characters", minNameLength, maxNameLength))
	}
	return nil
}

func validatePage(page models.Page) error {
	if page.Offset > math.MaxInt64 {
		return invalid("offset", fmt.Sprintf("must be at most %d", int64(math.MaxInt64)))
	}
	if page.Limit < 1 || page.Limit > models.MaxPageLimit {
		return invalid("limit", fmt.Sprintf("must be between 1 and %d", models.MaxPageLimit))
	}
	return nil
}
