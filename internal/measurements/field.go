// Package measurements implements the hawk sexing classifier: field ranges,
// input validation, the discriminant score, and score classification.
// Every function is pure and independent of any rendering surface.
package measurements

import (
	"fmt"
	"strconv"
)

// Field identifies one of the three measured dimensions.
type Field string

const (
	Wing   Field = "wing"
	Culmen Field = "culmen"
	Hallux Field = "hallux"
)

// Fields lists the measurement fields in validation order.
var Fields = []Field{Wing, Culmen, Hallux}

// Range is the inclusive bounds, in millimetres, accepted for a field.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// Contains reports whether n lies within [Min, Max].
func (r Range) Contains(n float64) bool {
	return n >= r.Min && n <= r.Max
}

// String renders the range the way validation messages cite it.
func (r Range) String() string {
	return fmt.Sprintf("%s and %s mm", formatBound(r.Min), formatBound(r.Max))
}

var ranges = map[Field]Range{
	Wing:   {Min: 300, Max: 500, Label: "Wing chord"},
	Culmen: {Min: 15, Max: 30, Label: "Culmen length"},
	Hallux: {Min: 20, Max: 35, Label: "Hallux length"},
}

// RangeOf returns the range for f. The boolean is false for unknown fields.
func RangeOf(f Field) (Range, bool) {
	r, ok := ranges[f]
	return r, ok
}

// Ranges returns a copy of every field's range.
func Ranges() map[Field]Range {
	out := make(map[Field]Range, len(ranges))
	for f, r := range ranges {
		out[f] = r
	}
	return out
}

// Valid reports whether f is a known measurement field.
func (f Field) Valid() bool {
	_, ok := ranges[f]
	return ok
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	return ranges[f].Label
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
