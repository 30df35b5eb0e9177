package measurements

import "strconv"

// Discriminant coefficients.
const (
	wingCoef   = 0.079
	culmenCoef = 0.35
	halluxCoef = 0.317
	intercept  = 50.114

	// Threshold separates the male and female zones.
	Threshold = 1.0
)

// Category is the classification outcome for a score.
type Category string

const (
	Male       Category = "male"
	Female     Category = "female"
	Borderline Category = "borderline"
)

// Label returns the display label for the category.
func (c Category) Label() string {
	switch c {
	case Male:
		return "Male"
	case Female:
		return "Female"
	case Borderline:
		return "Borderline (= 1.000)"
	default:
		return string(c)
	}
}

// Result is a classified score.
type Result struct {
	Score    float64  `json:"score"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// ScoreText returns the score formatted for display.
func (r Result) ScoreText() string {
	return FormatScore(r.Score)
}

// ComputeScore evaluates the discriminant for already-validated inputs.
func ComputeScore(wing, culmen, hallux float64) float64 {
	return (wingCoef * wing) + (culmenCoef * culmen) + (halluxCoef * hallux) - intercept
}

// Classify maps a score onto exactly one category. Both comparisons are strict,
// so only a score of exactly 1 is borderline.
func Classify(score float64) Result {
	switch {
	case score < Threshold:
		return Result{Score: score, Category: Male, Message: "Score < 1 → Male"}
	case score > Threshold:
		return Result{Score: score, Category: Female, Message: "Score > 1 → Female"}
	default:
		return Result{Score: score, Category: Borderline, Message: "Score = 1 → Borderline"}
	}
}

// FormatScore renders score with exactly three decimals. Rounding is correct
// with respect to the exact binary value, and exact ties round to even.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}
