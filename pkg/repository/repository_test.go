package repository_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/hawkcalc/pkg/repository"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		query  string
		want   string
	}{
		{"sqlite unchanged", "sqlite", "SELECT a FROM t WHERE b = ? AND c = ?", "SELECT a FROM t WHERE b = ? AND c = ?"},
		{"pgx positional", "pgx", "SELECT a FROM t WHERE b = ? AND c = ?", "SELECT a FROM t WHERE b = $1 AND c = $2"},
		{"pgx no args", "pgx", "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.Rebind(tt.driver, tt.query); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapError(t *testing.T) {
	notFound := errors.New("not found")
	other := errors.New("other")

	if got := repository.MapError(sql.ErrNoRows, notFound); got != notFound {
		t.Errorf("ErrNoRows: got %v, want %v", got, notFound)
	}
	if got := repository.MapError(other, notFound); got != other {
		t.Errorf("other: got %v, want unchanged", got)
	}
	if got := repository.MapError(nil, notFound); got != nil {
		t.Errorf("nil: got %v, want nil", got)
	}
}

func TestIsDuplicate(t *testing.T) {
	if !repository.IsDuplicate(&pgconn.PgError{Code: "23505"}) {
		t.Error("pg unique violation should be a duplicate")
	}
	if repository.IsDuplicate(&pgconn.PgError{Code: "23503"}) {
		t.Error("pg foreign key violation should not be a duplicate")
	}
	if repository.IsDuplicate(errors.New("boom")) {
		t.Error("plain error should not be a duplicate")
	}
}
