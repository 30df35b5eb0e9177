package measurements

// Inputs holds the raw, unvalidated field values.
type Inputs struct {
	Wing   string `json:"wing"`
	Culmen string `json:"culmen"`
	Hallux string `json:"hallux"`
}

// Get returns the raw value for f.
func (in Inputs) Get(f Field) string {
	switch f {
	case Wing:
		return in.Wing
	case Culmen:
		return in.Culmen
	case Hallux:
		return in.Hallux
	}
	return ""
}

// With returns a copy of in with f set to value. Unknown fields are ignored.
func (in Inputs) With(f Field, value string) Inputs {
	switch f {
	case Wing:
		in.Wing = value
	case Culmen:
		in.Culmen = value
	case Hallux:
		in.Hallux = value
	}
	return in
}

// Calculate validates wing, culmen and hallux in that order and classifies the
// resulting score. The first invalid field stops the calculation.
func Calculate(in Inputs) (Result, error) {
	values := make([]float64, len(Fields))
	for i, f := range Fields {
		n, err := Validate(in.Get(f), f)
		if err != nil {
			return Result{}, err
		}
		values[i] = n
	}

	return Classify(ComputeScore(values[0], values[1], values[2])), nil
}
