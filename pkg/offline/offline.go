// Package offline implements a cache-first offline layer for a fixed manifest
// of static assets. A Manager pre-caches the manifest into a single versioned
// bucket on install, purges every other bucket on activate, and then answers
// requests from that bucket before falling back to the network.
//
// Bucket storage and the network are injected through the CacheStorage and
// Fetcher interfaces.
package offline

import (
	"context"
	"errors"
	"net/http"
)

var (
	// ErrNotCached indicates the bucket holds no entry for the requested key.
	ErrNotCached = errors.New("entry not cached")
	// ErrInstall indicates the manifest could not be pre-cached.
	ErrInstall = errors.New("offline install failed")
	// ErrNotInstalled indicates activation was attempted before a successful install.
	ErrNotInstalled = errors.New("offline cache not installed")
	// ErrUnsupported indicates no cache storage is available.
	ErrUnsupported = errors.New("offline cache storage unavailable")
	// ErrInvalidAsset indicates a manifest entry that is not a relative path.
	ErrInvalidAsset = errors.New("invalid manifest asset")
	// ErrAssetStatus indicates the network answered an asset request with a non-2xx status.
	ErrAssetStatus = errors.New("unexpected asset status")
	// ErrTooLarge indicates a network response exceeded the configured size limit.
	ErrTooLarge = errors.New("response exceeds size limit")
)

// MapHTTPStatus maps offline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotCached):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupported), errors.Is(err, ErrNotInstalled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTooLarge), errors.Is(err, ErrAssetStatus):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Response is a fully buffered HTTP response as stored in a bucket.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Clone returns a deep copy of r.
func (r *Response) Clone() *Response {
	return &Response{
		Status: r.Status,
		Header: r.Header.Clone(),
		Body:   append([]byte(nil), r.Body...),
	}
}

// Write copies the response onto w.
func (r *Response) Write(w http.ResponseWriter) {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.Status)
	w.Write(r.Body)
}

// CacheStorage is a set of named buckets.
type CacheStorage interface {
	// Open returns the named bucket, creating it if it does not exist.
	Open(ctx context.Context, name string) (Bucket, error)
	// Keys lists the names of all existing buckets.
	Keys(ctx context.Context) ([]string, error)
	// Delete removes the named bucket and its entries. It reports whether the bucket existed.
	Delete(ctx context.Context, name string) (bool, error)
}

// Bucket stores responses by request key.
type Bucket interface {
	Name() string
	// Match returns the entry stored under key, or ErrNotCached.
	Match(ctx context.Context, key string) (*Response, error)
	// Put stores a single entry, replacing any previous one.
	Put(ctx context.Context, key string, resp *Response) error
	// PutAll stores every entry or none of them.
	PutAll(ctx context.Context, entries map[string]*Response) error
}

// Fetcher performs a request against the network.
type Fetcher interface {
	Fetch(req *http.Request) (*Response, error)
}
