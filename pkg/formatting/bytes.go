// Package formatting provides human-readable byte size formatting and parsing.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const unit = 1024

var suffixes = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with the largest base-1024 suffix that keeps the
// value at or above one, e.g. 1536 with precision 1 is "1.5 KB".
func FormatBytes(n int64, precision int) string {
	if n < unit && n > -unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	precision = max(precision, 0)

	f := math.Abs(float64(n))
	i := 0
	for f >= unit && i < len(suffixes)-1 {
		f /= unit
		i++
	}
	if n < 0 {
		f = -f
	}
	return strconv.FormatFloat(f, 'f', precision, 64) + " " + suffixes[i]
}

// ParseBytes parses sizes such as "10MB", "512 kb", "1.5GiB" or a bare byte
// count. Units are base-1024; an "iB" suffix is accepted as an alias.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	num, suffix := s, ""
	if split >= 0 {
		num, suffix = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	suffix = strings.ToUpper(suffix)
	if len(suffix) == 3 && strings.HasSuffix(suffix, "IB") {
		suffix = suffix[:1] + "B"
	}
	if suffix == "" {
		suffix = "B"
	}

	for i, sfx := range suffixes {
		if sfx != suffix {
			continue
		}
		size := value * math.Pow(unit, float64(i))
		if size >= math.MaxInt64 {
			return 0, fmt.Errorf("byte size overflows: %q", s)
		}
		return int64(size), nil
	}
	return 0, fmt.Errorf("unknown byte size unit: %q", suffix)
}
