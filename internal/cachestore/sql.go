// Package cachestore provides persistent offline.CacheStorage backends:
// a SQL store over the database system and a blob store over Azure Blob Storage.
package cachestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JaimeStill/hawkcalc/pkg/database"
	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/repository"
)

type sqlStorage struct {
	db     *sql.DB
	driver string
}

// NewSQL returns a CacheStorage backed by the cache_buckets and cache_entries
// tables. The schema must already be migrated.
func NewSQL(db database.System) offline.CacheStorage {
	return &sqlStorage{
		db:     db.Connection(),
		driver: db.Driver(),
	}
}

func (s *sqlStorage) q(query string) string {
	return repository.Rebind(s.driver, query)
}

func (s *sqlStorage) Open(ctx context.Context, name string) (offline.Bucket, error) {
	_, err := s.db.ExecContext(ctx, s.q("INSERT INTO cache_buckets (name) VALUES (?)"), name)
	if err != nil && !repository.IsDuplicate(err) {
		return nil, fmt.Errorf("open bucket %s: %w", name, err)
	}
	return &sqlBucket{storage: s, name: name}, nil
}

func (s *sqlStorage) Keys(ctx context.Context) ([]string, error) {
	names, err := repository.QueryMany(
		ctx, s.db,
		"SELECT name FROM cache_buckets ORDER BY created_at, name",
		nil, scanName,
	)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	return names, nil
}

func (s *sqlStorage) Delete(ctx context.Context, name string) (bool, error) {
	var existed bool
	err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.q("DELETE FROM cache_entries WHERE bucket = ?"), name); err != nil {
			return err
		}
		n, err := repository.ExecAffected(ctx, tx, s.q("DELETE FROM cache_buckets WHERE name = ?"), name)
		if err != nil {
			return err
		}
		existed = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete bucket %s: %w", name, err)
	}
	return existed, nil
}

type sqlBucket struct {
	storage *sqlStorage
	name    string
}

func (b *sqlBucket) Name() string {
	return b.name
}

func (b *sqlBucket) Match(ctx context.Context, key string) (*offline.Response, error) {
	resp, err := repository.QueryOne(
		ctx, b.storage.db,
		b.storage.q("SELECT status, header, body FROM cache_entries WHERE bucket = ? AND cache_key = ?"),
		[]any{b.name, key},
		scanResponse,
	)
	if err != nil {
		return nil, repository.MapError(err, offline.ErrNotCached)
	}
	return resp, nil
}

func (b *sqlBucket) Put(ctx context.Context, key string, resp *offline.Response) error {
	return repository.WithTx(ctx, b.storage.db, func(tx *sql.Tx) error {
		return b.put(ctx, tx, key, resp)
	})
}

func (b *sqlBucket) PutAll(ctx context.Context, entries map[string]*offline.Response) error {
	return repository.WithTx(ctx, b.storage.db, func(tx *sql.Tx) error {
		for key, resp := range entries {
			if err := b.put(ctx, tx, key, resp); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *sqlBucket) put(ctx context.Context, tx *sql.Tx, key string, resp *offline.Response) error {
	header, err := json.Marshal(resp.Header)
	if err != nil {
		return fmt.Errorf("encode header %s: %w", key, err)
	}

	_, err = tx.ExecContext(ctx,
		b.storage.q("DELETE FROM cache_entries WHERE bucket = ? AND cache_key = ?"),
		b.name, key,
	)
	if err != nil {
		return fmt.Errorf("replace entry %s: %w", key, err)
	}

	_, err = tx.ExecContext(ctx,
		b.storage.q("INSERT INTO cache_entries (bucket, cache_key, status, header, body) VALUES (?, ?, ?, ?, ?)"),
		b.name, key, resp.Status, string(header), resp.Body,
	)
	if err != nil {
		return fmt.Errorf("store entry %s: %w", key, err)
	}
	return nil
}

func scanName(s repository.Scanner) (string, error) {
	var name string
	err := s.Scan(&name)
	return name, err
}

func scanResponse(s repository.Scanner) (*offline.Response, error) {
	var (
		resp   offline.Response
		header string
	)
	if err := s.Scan(&resp.Status, &header, &resp.Body); err != nil {
		return nil, err
	}

	resp.Header = make(http.Header)
	if err := json.Unmarshal([]byte(header), &resp.Header); err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	return &resp, nil
}
