package cachestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/JaimeStill/hawkcalc/pkg/offline"
	"github.com/JaimeStill/hawkcalc/pkg/storage"
)

// Blob layout:
//
//	<bucket>/.bucket                  marker, present for every opened bucket
//	<bucket>/entries/<base64url(key)> JSON-encoded offline.Response
const (
	markerName    = ".bucket"
	entriesPrefix = "entries/"
)

// ErrInvalidBucket indicates a bucket name that cannot be used as a blob prefix.
var ErrInvalidBucket = errors.New("invalid bucket name")

type blobStorage struct {
	store storage.System
}

// NewBlob returns a CacheStorage that keeps each bucket under its own blob
// prefix. Entries are written one blob at a time; PutAll removes what it
// wrote if a later upload fails.
func NewBlob(store storage.System) offline.CacheStorage {
	return &blobStorage{store: store}
}

func (s *blobStorage) Open(ctx context.Context, name string) (offline.Bucket, error) {
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBucket, name)
	}

	err := s.store.Upload(ctx, name+"/"+markerName, bytes.NewReader(nil), "application/octet-stream")
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", name, err)
	}
	return &blobBucket{store: s.store, name: name}, nil
}

func (s *blobStorage) Keys(ctx context.Context) ([]string, error) {
	blobs, err := s.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	var names []string
	for _, b := range blobs {
		name, rest, ok := strings.Cut(b, "/")
		if ok && rest == markerName {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *blobStorage) Delete(ctx context.Context, name string) (bool, error) {
	blobs, err := s.store.List(ctx, name+"/")
	if err != nil {
		return false, fmt.Errorf("delete bucket %s: %w", name, err)
	}
	if len(blobs) == 0 {
		return false, nil
	}

	// marker last, so a partial delete still lists the bucket for the next purge
	marker := name + "/" + markerName
	slices.SortFunc(blobs, func(a, b string) int {
		switch {
		case a == marker:
			return 1
		case b == marker:
			return -1
		}
		return strings.Compare(a, b)
	})

	for _, b := range blobs {
		if err := s.store.Delete(ctx, b); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("delete bucket %s: %w", name, err)
		}
	}
	return true, nil
}

type blobBucket struct {
	store storage.System
	name  string
}

func (b *blobBucket) Name() string {
	return b.name
}

func (b *blobBucket) blobKey(key string) string {
	return b.name + "/" + entriesPrefix + base64.RawURLEncoding.EncodeToString([]byte(key))
}

func (b *blobBucket) Match(ctx context.Context, key string) (*offline.Response, error) {
	rc, err := b.store.Download(ctx, b.blobKey(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, offline.ErrNotCached
		}
		return nil, fmt.Errorf("match %s: %w", key, err)
	}
	defer rc.Close()

	var resp offline.Response
	if err := json.NewDecoder(rc).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode entry %s: %w", key, err)
	}
	return &resp, nil
}

func (b *blobBucket) Put(ctx context.Context, key string, resp *offline.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", key, err)
	}
	if err := b.store.Upload(ctx, b.blobKey(key), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("store entry %s: %w", key, err)
	}
	return nil
}

func (b *blobBucket) PutAll(ctx context.Context, entries map[string]*offline.Response) error {
	keys := slices.Sorted(maps.Keys(entries))

	var written []string
	for _, key := range keys {
		if err := b.Put(ctx, key, entries[key]); err != nil {
			for _, w := range written {
				b.store.Delete(context.WithoutCancel(ctx), b.blobKey(w))
			}
			return err
		}
		written = append(written, key)
	}
	return nil
}
