package measurements

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validate parses raw as a measurement for field and checks it against the
// field's range. A returned error is always an *InputError.
func Validate(raw string, field Field) (float64, error) {
	r, ok := RangeOf(field)
	if !ok {
		return 0, fmt.Errorf("unknown field %q", field)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, inputError(field, ErrRequired, "%s is required.", r.Label)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, inputError(field, ErrNotNumber, "%s must be a number.", r.Label)
	}

	if !r.Contains(n) {
		return 0, inputError(field, ErrOutOfRange, "%s must be between %s.", r.Label, r)
	}

	return n, nil
}

func inputError(field Field, kind error, format string, args ...any) *InputError {
	return &InputError{
		Field:   field,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
