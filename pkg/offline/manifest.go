package offline

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Manifest is the ordered list of asset paths to pre-cache, relative to the
// application root (e.g. "./", "./style.css").
type Manifest []string

// Keys normalizes every entry into the request key it will be cached under.
// Absolute URLs, empty entries and duplicates are rejected.
func (m Manifest) Keys() ([]string, error) {
	keys := make([]string, 0, len(m))
	seen := make(map[string]string, len(m))

	for _, asset := range m {
		key, err := normalizeAsset(asset)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q duplicates %q", ErrInvalidAsset, asset, prev)
		}
		seen[key] = asset
		keys = append(keys, key)
	}

	return keys, nil
}

// RequestKey returns the cache key for an incoming request: its cleaned path
// plus the raw query, if any.
func RequestKey(r *http.Request) string {
	return buildKey(r.URL.Path, r.URL.RawQuery)
}

func normalizeAsset(asset string) (string, error) {
	if strings.TrimSpace(asset) == "" {
		return "", fmt.Errorf("%w: empty entry", ErrInvalidAsset)
	}

	u, err := url.Parse(asset)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidAsset, asset, err)
	}
	if u.IsAbs() || u.Host != "" {
		return "", fmt.Errorf("%w: %q is not relative", ErrInvalidAsset, asset)
	}

	return buildKey(u.Path, u.RawQuery), nil
}

func buildKey(p, rawQuery string) string {
	key := path.Join("/", p)
	if strings.HasSuffix(p, "/") && key != "/" {
		key += "/"
	}
	if rawQuery != "" {
		key += "?" + rawQuery
	}
	return key
}
