// Package calculator holds the calculator's view-model and the reducer that
// drives it. The rendering surface (template, script, API client) only ever
// observes a View and submits Actions.
package calculator

import "github.com/JaimeStill/hawkcalc/internal/measurements"

// Placeholder is shown for score and sex when no result is displayed.
const Placeholder = "—"

// HintInvalid is shown after a calculation fails validation.
const HintInvalid = "Enter valid measurements to calculate."

// State is the visual state tag of the output region.
type State string

const (
	Neutral    State = "neutral"
	Male       State = "male"
	Female     State = "female"
	Borderline State = "borderline"
)

// StateOf returns the visual state for a classification category.
func StateOf(c measurements.Category) State {
	switch c {
	case measurements.Male:
		return Male
	case measurements.Female:
		return Female
	case measurements.Borderline:
		return Borderline
	}
	return Neutral
}

// View is everything the rendering surface needs to draw the calculator.
// Alert is transient: it carries a blocking notification for the single
// render that follows the action that raised it.
type View struct {
	Inputs measurements.Inputs `json:"inputs"`
	Score  string              `json:"score"`
	Sex    string              `json:"sex"`
	Hint   string              `json:"hint"`
	State  State               `json:"state"`
	Alert  string              `json:"alert,omitempty"`
	Focus  measurements.Field  `json:"focus,omitempty"`
}

// Initial returns the view shown before any interaction.
func Initial() View {
	return View{
		Score: Placeholder,
		Sex:   Placeholder,
		State: Neutral,
	}
}

// Neutral reports whether the view shows no result.
func (v View) Neutral() bool {
	return v.State == Neutral
}

func (v View) cleared(hint string) View {
	v.Score = Placeholder
	v.Sex = Placeholder
	v.Hint = hint
	v.State = Neutral
	return v
}

func (v View) showing(res measurements.Result) View {
	v.Score = res.ScoreText()
	v.Sex = res.Category.Label()
	v.Hint = res.Message
	v.State = StateOf(res.Category)
	return v
}
