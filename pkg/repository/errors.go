package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgDuplicateKeyCode = "23505"

// MapError translates sql.ErrNoRows to notFoundErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}
	return err
}

// IsDuplicate reports whether err is a unique constraint violation from
// PostgreSQL (23505) or SQLite (SQLITE_CONSTRAINT_UNIQUE / PRIMARYKEY).
func IsDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDuplicateKeyCode
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
