// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the single persistent entity of the service.
//
// HashedPassword always holds a bcrypt hash and is never serialized to JSON,
// so a User value can be written straight into an HTTP response.
type User struct {
	// ID is the system-assigned primary key.
	ID int64 `json:"id"`

	// Email is unique across all users and used as the login identifier
	// and as the JWT subject.
	Email string `json:"email"`

	// HashedPassword is the encoded bcrypt hash (salt included).
	HashedPassword string `json:"-"`

	// Name is the display name of the user.
	Name string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of a [User]. Only non-nil fields are applied.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
}

// IsEmpty reports whether no field would be changed by the update.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Password == nil && u.Name == nil
}

// Paging bounds of list queries.
const (
	DefaultPageLimit uint64 = 100
	MaxPageLimit     uint64 = 1000
)

// Page limits a listing query.
type Page struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}
