// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/migrations"
)

// Dialect identifies the SQL engine behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a pooled *sql.DB with everything a repository needs to talk to
// it: the dialect-specific query builder, an error classifier, the per
// operation timeout and statement echo.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	acquireTimeout     time.Duration
	echo               bool
}

// NewConnect opens the database the DSN points to. The scheme selects the
// driver: postgres:// and postgresql:// use pgx, sqlite:// and file: use
// SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, _, err := ParseDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return NewConnectPostgres(ctx, cfg, log)
	}
}

// ParseDSN returns the dialect of dsn and the DSN to hand to its driver.
func ParseDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrUnsupportedDSN)
		}
		return DialectSQLite, path, nil
	case strings.HasPrefix(dsn, "file:"):
		return DialectSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: unknown scheme in %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// configurePool applies the pool limits: PoolSize connections are kept idle
// and up to MaxOverflow more may be opened under load.
func configurePool(conn *sql.DB, cfg config.DB) {
	conn.SetMaxOpenConns(cfg.MaxOpenConns())
	conn.SetMaxIdleConns(cfg.PoolSize)
	conn.SetConnMaxLifetime(cfg.Recycle)
}

// Migrate applies the embedded schema migrations of the DB dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// Dialect reports the SQL engine behind db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// builder returns a squirrel statement builder using the dialect placeholder.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// withTimeout bounds a single store operation by the acquire timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.acquireTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.acquireTimeout)
}

// logQuery echoes a statement at debug level. Arguments are counted, not
// printed, so password hashes never reach the log.
func (db *DB) logQuery(ctx context.Context, query string, args []any) {
	if !db.echo {
		return
	}
	logger.FromContext(ctx).Debug().
		Str("func", "*DB.logQuery").
		Str("query", query).
		Int("args", len(args)).
		Msg("executing sql statement")
}

// classify maps a driver error to a store sentinel. ctx is the operation
// context; once its deadline has passed any error means the database did not
// answer in time.
func (db *DB) classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoUserWasFound
	case errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	if db.errorClassificator == nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	switch db.errorClassificator.Classify(err) {
	case Duplicate:
		return ErrEmailAlreadyExists
	case Retryable:
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// redactDSN strips credentials before a DSN is put into an error or a log.
func redactDSN(dsn string) string {
	schemeEnd := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return dsn
	}
	return dsn[:schemeEnd+3] + "***" + dsn[at:]
}
