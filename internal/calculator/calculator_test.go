package calculator_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/hawkcalc/internal/calculator"
	"github.com/JaimeStill/hawkcalc/internal/measurements"
)

func filled(wing, culmen, hallux string) calculator.View {
	v := calculator.Initial()
	v.Inputs = measurements.Inputs{Wing: wing, Culmen: culmen, Hallux: hallux}
	return v
}

func TestInitial(t *testing.T) {
	v := calculator.Initial()

	if v.Score != calculator.Placeholder || v.Sex != calculator.Placeholder {
		t.Errorf("outputs: got %q/%q, want placeholders", v.Score, v.Sex)
	}
	if v.State != calculator.Neutral {
		t.Errorf("state: got %s, want neutral", v.State)
	}
	if v.Hint != "" || v.Alert != "" {
		t.Errorf("hint/alert: got %q/%q, want empty", v.Hint, v.Alert)
	}
}

func TestReduceCalculate(t *testing.T) {
	tests := []struct {
		name      string
		view      calculator.View
		wantState calculator.State
		wantSex   string
		wantHint  string
	}{
		{"male", filled("400", "22", "28"), calculator.Male, "Male", "Score < 1 → Male"},
		{"female", filled("480", "28", "33"), calculator.Female, "Female", "Score > 1 → Female"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculator.Reduce(tt.view, calculator.Calculate())

			if got.State != tt.wantState {
				t.Errorf("state: got %s, want %s", got.State, tt.wantState)
			}
			if got.Sex != tt.wantSex {
				t.Errorf("sex: got %q, want %q", got.Sex, tt.wantSex)
			}
			if got.Hint != tt.wantHint {
				t.Errorf("hint: got %q, want %q", got.Hint, tt.wantHint)
			}
			if got.Alert != "" {
				t.Errorf("alert: got %q, want empty", got.Alert)
			}
			if got.Inputs != tt.view.Inputs {
				t.Errorf("inputs changed: got %+v", got.Inputs)
			}
		})
	}
}

func TestReduceCalculateScoreText(t *testing.T) {
	got := calculator.Reduce(filled("400", "22", "28"), calculator.Calculate())
	if got.Score != "-1.938" {
		t.Errorf("score: got %s, want -1.938", got.Score)
	}
}

func TestReduceCalculateInvalid(t *testing.T) {
	tests := []struct {
		name      string
		view      calculator.View
		wantAlert string
	}{
		{"empty wing", filled("", "22", "28"), "Wing chord is required."},
		{"text culmen", filled("400", "abc", "28"), "Culmen length must be a number."},
		{"hallux out of range", filled("400", "22", "40"), "Hallux length must be between 20 and 35 mm."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shown := calculator.Reduce(filled("400", "22", "28"), calculator.Calculate())
			tt.view.Score, tt.view.Sex, tt.view.State = shown.Score, shown.Sex, shown.State

			got := calculator.Reduce(tt.view, calculator.Calculate())

			if got.Alert != tt.wantAlert {
				t.Errorf("alert: got %q, want %q", got.Alert, tt.wantAlert)
			}
			if got.Score != calculator.Placeholder || got.Sex != calculator.Placeholder {
				t.Errorf("outputs: got %q/%q, want placeholders", got.Score, got.Sex)
			}
			if got.State != calculator.Neutral {
				t.Errorf("state: got %s, want neutral", got.State)
			}
			if got.Hint != calculator.HintInvalid {
				t.Errorf("hint: got %q, want %q", got.Hint, calculator.HintInvalid)
			}
		})
	}
}

func TestReduceBorderline(t *testing.T) {
	// 0.079*300 + 0.35*15 + 0.317*h - 50.114 == 1 has no exact decimal solution
	// inside the ranges, so the borderline view is checked through Classify.
	res := measurements.Classify(1)
	if calculator.StateOf(res.Category) != calculator.Borderline {
		t.Errorf("state: got %s, want borderline", calculator.StateOf(res.Category))
	}
	if res.Category.Label() != "Borderline (= 1.000)" {
		t.Errorf("label: got %q", res.Category.Label())
	}
}

func TestReduceEditClearsResult(t *testing.T) {
	edits := []struct {
		name  string
		field measurements.Field
		value string
	}{
		{"valid wing", measurements.Wing, "410"},
		{"invalid culmen", measurements.Culmen, "abc"},
		{"empty hallux", measurements.Hallux, ""},
	}

	for _, e := range edits {
		t.Run(e.name, func(t *testing.T) {
			shown := calculator.Reduce(filled("400", "22", "28"), calculator.Calculate())
			if shown.Neutral() {
				t.Fatal("precondition: expected a result to be shown")
			}

			got := calculator.Reduce(shown, calculator.FieldEdited(e.field, e.value))

			if got.Score != calculator.Placeholder || got.Sex != calculator.Placeholder {
				t.Errorf("outputs: got %q/%q, want placeholders", got.Score, got.Sex)
			}
			if !got.Neutral() {
				t.Errorf("state: got %s, want neutral", got.State)
			}
			if got.Hint != "" || got.Alert != "" {
				t.Errorf("hint/alert: got %q/%q, want empty", got.Hint, got.Alert)
			}
			if got.Inputs.Get(e.field) != e.value {
				t.Errorf("input %s: got %q, want %q", e.field, got.Inputs.Get(e.field), e.value)
			}
		})
	}
}

func TestReduceReset(t *testing.T) {
	starts := map[string]calculator.View{
		"initial": calculator.Initial(),
		"result":  calculator.Reduce(filled("400", "22", "28"), calculator.Calculate()),
		"alert":   calculator.Reduce(filled("", "", ""), calculator.Calculate()),
		"edited":  calculator.Reduce(calculator.Initial(), calculator.FieldEdited(measurements.Hallux, "30")),
	}

	for name, start := range starts {
		t.Run(name, func(t *testing.T) {
			got := calculator.Reduce(start, calculator.Reset())

			if got.Inputs != (measurements.Inputs{}) {
				t.Errorf("inputs: got %+v, want empty", got.Inputs)
			}
			if !got.Neutral() || got.Hint != "" || got.Alert != "" {
				t.Errorf("display: got state=%s hint=%q alert=%q", got.State, got.Hint, got.Alert)
			}
			if got.Score != calculator.Placeholder || got.Sex != calculator.Placeholder {
				t.Errorf("outputs: got %q/%q, want placeholders", got.Score, got.Sex)
			}
			if got.Focus != measurements.Wing {
				t.Errorf("focus: got %q, want wing", got.Focus)
			}
		})
	}
}

func TestReduceKeyPress(t *testing.T) {
	v := filled("400", "22", "28")

	for _, f := range measurements.Fields {
		got := calculator.Reduce(v, calculator.KeyPressed(f, calculator.EnterKey))
		if got.State != calculator.Male {
			t.Errorf("enter in %s: got %s, want male", f, got.State)
		}
	}

	got := calculator.Reduce(v, calculator.KeyPressed(measurements.Wing, "Tab"))
	if got.State != calculator.Neutral || got.Score != calculator.Placeholder {
		t.Errorf("tab: got state=%s score=%s, want unchanged", got.State, got.Score)
	}
}

func TestReduceDropsAlert(t *testing.T) {
	alerted := calculator.Reduce(filled("", "", ""), calculator.Calculate())
	if alerted.Alert == "" {
		t.Fatal("precondition: expected alert")
	}

	got := calculator.Reduce(alerted, calculator.KeyPressed(measurements.Wing, "a"))
	if got.Alert != "" {
		t.Errorf("alert: got %q, want empty", got.Alert)
	}
	if got.Hint != calculator.HintInvalid {
		t.Errorf("hint: got %q, want it kept", got.Hint)
	}
}

func TestActionValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  calculator.Action
		wantErr bool
	}{
		{"calculate", calculator.Calculate(), false},
		{"reset", calculator.Reset(), false},
		{"edit", calculator.FieldEdited(measurements.Culmen, "20"), false},
		{"key", calculator.KeyPressed(measurements.Hallux, "Enter"), false},
		{"edit unknown field", calculator.FieldEdited("tarsus", "20"), true},
		{"key missing field", calculator.Action{Kind: calculator.ActionKey, Key: "Enter"}, true},
		{"unknown kind", calculator.Action{Kind: "submit"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if tt.wantErr {
				if !errors.Is(err, calculator.ErrInvalidAction) {
					t.Errorf("error: got %v, want ErrInvalidAction", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestReduceInvalidActionUnchanged(t *testing.T) {
	shown := calculator.Reduce(filled("400", "22", "28"), calculator.Calculate())
	got := calculator.Reduce(shown, calculator.Action{Kind: "submit"})

	if got != shown {
		t.Errorf("view changed: got %+v, want %+v", got, shown)
	}
}
