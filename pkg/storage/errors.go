package storage

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no blob exists under the key.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty blob key.
	ErrEmptyKey = errors.New("blob key must not be empty")
	// ErrInvalidKey indicates a blob key containing "..".
	ErrInvalidKey = errors.New("blob key contains invalid path segment")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
