package measurements

import (
	"errors"
	"net/http"
)

// Validation failure kinds.
var (
	ErrRequired   = errors.New("value is required")
	ErrNotNumber  = errors.New("value is not a number")
	ErrOutOfRange = errors.New("value is out of range")
)

// InputError describes why a raw field value was rejected.
// Message is the user-facing text; Unwrap exposes the failure kind.
type InputError struct {
	Field   Field
	Kind    error
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

// MapHTTPStatus maps measurement errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrRequired) ||
		errors.Is(err, ErrNotNumber) ||
		errors.Is(err, ErrOutOfRange) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
