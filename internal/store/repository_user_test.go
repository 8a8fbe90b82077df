// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

var userRowColumns = []string{"id", "email", "hashed_password", "name", "created_at", "updated_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			dialect:            DialectPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
			acquireTimeout:     time.Second,
			echo:               true,
		},
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func aliceRow() *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(int64(1), "alice@example.com", "hash", "Alice", testNow, testNow)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{Email: "alice@example.com", HashedPassword: "hash", Name: "Alice", CreatedAt: testNow, UpdatedAt: testNow}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (email,hashed_password,name,created_at,updated_at) VALUES ($1,$2,$3,$4,$5) RETURNING")).
		WithArgs(user.Email, user.HashedPassword, user.Name, testNow, testNow).
		WillReturnRows(aliceRow())

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "hash", created.HashedPassword)
	assert.True(t, created.CreatedAt.Equal(testNow))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "unique violation", dbErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrEmailAlreadyExists},
		{name: "cannot connect now", dbErr: pgError(pgerrcode.CannotConnectNow), wantErr: ErrDatabaseUnavailable},
		{name: "bad connection", dbErr: sql.ErrConnDone, wantErr: ErrDatabaseUnavailable},
		{name: "not null violation", dbErr: pgError(pgerrcode.NotNullViolation), wantErr: ErrExecutingQuery},
		{name: "unexpected", dbErr: errors.New("db network error"), wantErr: ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectQuery("INSERT INTO users").WillReturnError(tt.dbErr)

			_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// intentionally wrong shape → scan error
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestFindUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, hashed_password, name, created_at, updated_at FROM users WHERE id = $1 LIMIT 1")).
			WithArgs(int64(1)).
			WillReturnRows(aliceRow())

		found, err := repo.FindUserByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice", found.Name)
		assert.Equal(t, time.UTC, found.UpdatedAt.Location())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT id").
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := repo.FindUserByID(context.Background(), 42)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestFindUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("alice@example.com").
			WillReturnRows(aliceRow())

		found, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), found.ID)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

// TestFindUser_AcquireTimeout verifies that a stalled database surfaces as
// ErrDatabaseUnavailable once the acquire timeout elapses.
func TestFindUser_AcquireTimeout(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	repo.db.acquireTimeout = 20 * time.Millisecond

	mock.ExpectQuery("SELECT id").
		WillDelayFor(500 * time.Millisecond).
		WillReturnRows(aliceRow())

	start := time.Now()
	_, err := repo.FindUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestListUsers(t *testing.T) {
	t.Run("page", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(2), "bob@example.com", "h2", "Bob", testNow, testNow).
			AddRow(int64(3), "carol@example.com", "h3", "Carol", testNow, testNow)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id LIMIT 2 OFFSET 1")).
			WillReturnRows(rows)

		users, err := repo.ListUsers(context.Background(), models.Page{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(2), users[0].ID)
		assert.Equal(t, int64(3), users[1].ID)
	})

	t.Run("empty", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("FROM users ORDER BY id").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		users, err := repo.ListUsers(context.Background(), models.Page{Limit: 100})
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("FROM users ORDER BY id").
			WillReturnError(pgError(pgerrcode.TooManyConnections))

		_, err := repo.ListUsers(context.Background(), models.Page{Limit: 100})
		assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	})

	t.Run("scan error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		rows := sqlmock.NewRows(userRowColumns).
			AddRow("not-an-id", "bob@example.com", "h2", "Bob", testNow, testNow)
		mock.ExpectQuery("FROM users ORDER BY id").WillReturnRows(rows)

		_, err := repo.ListUsers(context.Background(), models.Page{Limit: 100})
		assert.ErrorIs(t, err, ErrScanningRows)
	})

	t.Run("row error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(2), "bob@example.com", "h2", "Bob", testNow, testNow).
			RowError(0, errors.New("broken stream"))
		mock.ExpectQuery("FROM users ORDER BY id").WillReturnRows(rows)

		_, err := repo.ListUsers(context.Background(), models.Page{Limit: 100})
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestUpdateUser(t *testing.T) {
	later := testNow.Add(time.Hour)
	user := models.User{ID: 1, Email: "alice@new.example", HashedPassword: "hash2", Name: "Alice B", UpdatedAt: later}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET email = $1, hashed_password = $2, name = $3, updated_at = $4 WHERE id = $5 RETURNING")).
			WithArgs(user.Email, user.HashedPassword, user.Name, later, int64(1)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(int64(1), user.Email, user.HashedPassword, user.Name, testNow, later))
		mock.ExpectCommit()

		updated, err := repo.UpdateUser(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, "alice@new.example", updated.Email)
		assert.True(t, updated.UpdatedAt.Equal(later))
		assert.True(t, updated.CreatedAt.Equal(testNow))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").WillReturnRows(sqlmock.NewRows(userRowColumns))
		mock.ExpectRollback()

		_, err := repo.UpdateUser(context.Background(), user)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))
		mock.ExpectRollback()

		_, err := repo.UpdateUser(context.Background(), user)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("begin error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin().WillReturnError(errors.New("no tx for you"))

		_, err := repo.UpdateUser(context.Background(), user)
		assert.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("commit error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), user.Email, user.HashedPassword, user.Name, testNow, later))
		mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

		_, err := repo.UpdateUser(context.Background(), user)
		assert.ErrorIs(t, err, ErrCommitingTransaction)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteUser(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), 5), ErrNoUserWasFound)
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec("DELETE FROM users").WillReturnError(errors.New("disk gone"))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), 1), ErrExecutingQuery)
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectExec("DELETE FROM users").
			WillReturnResult(sqlmock.NewErrorResult(errors.New("unknown")))

		assert.ErrorIs(t, repo.DeleteUser(context.Background(), 1), ErrExecutingQuery)
	})
}
