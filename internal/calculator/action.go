package calculator

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/hawkcalc/internal/measurements"
)

// ActionKind names a user interaction.
type ActionKind string

const (
	ActionCalculate ActionKind = "calculate"
	ActionReset     ActionKind = "reset"
	ActionEdit      ActionKind = "edit"
	ActionKey       ActionKind = "key"
)

// EnterKey triggers a calculation when pressed within a field.
const EnterKey = "Enter"

// ErrInvalidAction indicates an action that cannot be applied.
var ErrInvalidAction = errors.New("invalid action")

// Action is a single interaction submitted to Reduce.
// Field and Value apply to edits; Field and Key apply to key presses.
type Action struct {
	Kind  ActionKind         `json:"kind"`
	Field measurements.Field `json:"field,omitempty"`
	Value string             `json:"value,omitempty"`
	Key   string             `json:"key,omitempty"`
}

// Calculate requests a calculation with the current inputs.
func Calculate() Action {
	return Action{Kind: ActionCalculate}
}

// Reset clears the inputs and the output.
func Reset() Action {
	return Action{Kind: ActionReset}
}

// FieldEdited records a user edit of field.
func FieldEdited(field measurements.Field, value string) Action {
	return Action{Kind: ActionEdit, Field: field, Value: value}
}

// KeyPressed records a key press while focus is within field.
func KeyPressed(field measurements.Field, key string) Action {
	return Action{Kind: ActionKey, Field: field, Key: key}
}

// Validate reports whether the action is well formed.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionCalculate, ActionReset:
		return nil
	case ActionEdit, ActionKey:
		if !a.Field.Valid() {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidAction, a.Field)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
	}
}

// Reduce applies a to v and returns the next view. Any alert on v is dropped
// before the action applies. Invalid actions leave the view unchanged apart
// from the dropped alert.
func Reduce(v View, a Action) View {
	v.Alert = ""
	v.Focus = ""

	if a.Validate() != nil {
		return v
	}

	switch a.Kind {
	case ActionCalculate:
		return calculate(v)
	case ActionReset:
		next := Initial()
		next.Focus = measurements.Wing
		return next
	case ActionEdit:
		v.Inputs = v.Inputs.With(a.Field, a.Value)
		return v.cleared("")
	case ActionKey:
		if a.Key == EnterKey {
			return calculate(v)
		}
	}
	return v
}

func calculate(v View) View {
	res, err := measurements.Calculate(v.Inputs)
	if err != nil {
		v = v.cleared(HintInvalid)
		v.Alert = err.Error()
		return v
	}
	return v.showing(res)
}
