// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/models"
)

var userColumns = []string{"id", "email", "hashed_password", "name", "created_at", "updated_at"}

var returningUser = "RETURNING " + strings.Join(userColumns, ", ")

var usersTable = models.User{}.TableName()

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns("email", "hashed_password", "name", "created_at", "updated_at").
		Values(user.Email, user.HashedPassword, user.Name, user.CreatedAt, user.UpdatedAt).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildListUsersQuery(b sq.StatementBuilderType, page models.Page) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		Limit(page.Limit).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("email", user.Email).
		Set("hashed_password", user.HashedPassword).
		Set("name", user.Name).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID}).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := b.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
