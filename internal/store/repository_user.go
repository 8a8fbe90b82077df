// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

// userRepository is the database/sql implementation of [UserRepository].
// It works against the "users" table of either supported dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned ID.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - timeout or lost connection → [ErrDatabaseUnavailable].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.db.builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	r.db.logQuery(ctx, query, args)
	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, err
	}

	return created, nil
}

// FindUserByID retrieves the user with the given primary key.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

// FindUserByEmail retrieves the user whose email matches exactly.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder(), where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	r.db.logQuery(ctx, query, args)
	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.classify(ctx, err)
		if !errors.Is(err, ErrNoUserWasFound) {
			log.Err(err).Str("func", funcName).Msg("error finding user")
		}
		return models.User{}, err
	}

	return user, nil
}

// ListUsers returns one page of users ordered by ID. An empty page is an
// empty, non-nil slice.
func (r *userRepository) ListUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder(), page)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building query")
		return nil, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	r.db.logQuery(ctx, query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error iterating user rows")
		return nil, err
	}

	return users, nil
}

// UpdateUser overwrites email, hashed_password, name and updated_at of the
// row identified by user.ID inside a transaction and returns the stored row.
//
// Error handling:
//   - no row with user.ID → [ErrNoUserWasFound].
//   - email taken by another user → [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder(), user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	r.db.logQuery(ctx, query, args)
	updated, err := scanUser(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		err = r.db.classify(ctx, err)
		if !errors.Is(err, ErrNoUserWasFound) {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		}
		return models.User{}, err
	}

	if err = tx.Commit(); err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// DeleteUser removes the user with the given ID.
// Returns [ErrNoUserWasFound] when no row was deleted.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder(), id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error building query")
		return err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	r.db.logQuery(ctx, query, args)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.classify(ctx, err)
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user, nil
}
