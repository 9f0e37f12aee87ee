package question

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a given: either a number or a piece of text.
type Value struct {
	Num    float64
	Text   string
	IsText bool
}

// Number returns a numeric value.
func Number(v float64) Value { return Value{Num: v} }

// Text returns a textual value.
func Text(s string) Value { return Value{Text: s, IsText: true} }

// Float returns the numeric value and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	return v.Num, !v.IsText
}

// String formats the value for display in a statement.
func (v Value) String() string {
	if v.IsText {
		return v.Text
	}
	return strconv.FormatFloat(v.Num, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsText {
		return json.Marshal(v.Text)
	}
	return json.Marshal(v.Num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	return fmt.Errorf("given must be a number or a string, got %s", data)
}

// numericGivens returns the numeric subset of givens.
func numericGivens(givens map[string]Value) map[string]float64 {
	out := make(map[string]float64, len(givens))
	for k, v := range givens {
		if n, ok := v.Float(); ok {
			out[k] = n
		}
	}
	return out
}
