// Package question defines question templates and turns them into concrete,
// seeded question instances.
package question

import (
	"encoding/json"

	"github.com/rokuro32/staticamaster/internal/compare"
)

// Type is the answer modality of a question.
type Type string

const (
	TypeMCQ      Type = "mcq"
	TypeNumeric  Type = "numeric"
	TypeDCL      Type = "dcl"
	TypeEquation Type = "equation"
	TypeMulti    Type = "multi-step"

	// Wave variants are answered through the UI. They are instantiated like
	// any other template but have no scoring strategy.
	TypeWaveSketch        Type = "wave-sketch"
	TypeWaveMatch         Type = "wave-match"
	TypeParameterIdentify Type = "parameter-identify"
)

// AllTypes returns every known question type.
func AllTypes() []Type {
	return []Type{
		TypeMCQ, TypeNumeric, TypeDCL, TypeEquation, TypeMulti,
		TypeWaveSketch, TypeWaveMatch, TypeParameterIdentify,
	}
}

// Difficulty is the tier a template is authored for.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Parameter describes a given whose value is sampled at instantiation.
type Parameter struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Step          float64 `json:"step"`
	DecimalPlaces int     `json:"decimalPlaces,omitempty"`
}

// Answer is one expected value. A zero Tolerance or empty ToleranceType
// defers to the engine configuration.
type Answer struct {
	// Name pairs the answer with a named formula output. Unnamed answers
	// pair with outputs by position.
	Name          string                `json:"name,omitempty"`
	Value         float64               `json:"value"`
	Unit          string                `json:"unit,omitempty"`
	Tolerance     float64               `json:"tolerance,omitempty"`
	ToleranceType compare.ToleranceKind `json:"toleranceType,omitempty"`
}

// Answers holds a template's expected values. It decodes from either a
// single answer object or an array of them.
type Answers []Answer

func (a *Answers) UnmarshalJSON(data []byte) error {
	var list []Answer
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var one Answer
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*a = Answers{one}
	return nil
}

func (a Answers) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]Answer(a))
}

// Primary returns the first answer, or false when there is none.
func (a Answers) Primary() (Answer, bool) {
	if len(a) == 0 {
		return Answer{}, false
	}
	return a[0], true
}

// CommonMistake is an authored diagnostic for a known wrong answer. Exactly
// one of Value, Range or Pattern is expected to be set.
type CommonMistake struct {
	Value      *float64  `json:"value,omitempty"`
	Range      []float64 `json:"range,omitempty"` // [min, max]
	Pattern    string    `json:"pattern,omitempty"`
	Feedback   string    `json:"feedback"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Option is one choice of a multiple choice question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback,omitempty"`
}

// Force is an arrow placed on a free-body diagram. Angle is in degrees in
// canvas convention.
type Force struct {
	ID               string        `json:"id,omitempty"`
	Name             string        `json:"name"`
	ApplicationPoint compare.Point `json:"applicationPoint"`
	Angle            float64       `json:"angle"`
	Magnitude        float64       `json:"magnitude,omitempty"`
	IsUnknown        bool          `json:"isUnknown,omitempty"`
	Color            string        `json:"color,omitempty"`
}

// SupportType is the kind of boundary condition a support models.
type SupportType string

const (
	SupportPin    SupportType = "pin"
	SupportRoller SupportType = "roller"
	SupportFixed  SupportType = "fixed"
	SupportCable  SupportType = "cable"
	SupportLink   SupportType = "link"
)

// Support is a support symbol placed on a free-body diagram.
type Support struct {
	ID        string        `json:"id,omitempty"`
	Type      SupportType   `json:"type"`
	Position  compare.Point `json:"position"`
	Angle     float64       `json:"angle,omitempty"`
	Reactions []string      `json:"reactions,omitempty"`
}

// DCLSchema is the ground truth of a free-body diagram question.
type DCLSchema struct {
	Forces   []Force   `json:"forces"`
	Supports []Support `json:"supports,omitempty"`
}

// Template is an authored, parameterized question.
type Template struct {
	ID           string     `json:"id"`
	ModuleID     string     `json:"moduleId"`
	CourseID     string     `json:"courseId,omitempty"`
	Competencies []string   `json:"competencies,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	Type         Type       `json:"type"`

	// Statement may contain {name} placeholders for givens and parameters.
	Statement  string               `json:"statement"`
	Givens     map[string]Value     `json:"givens,omitempty"`
	Parameters map[string]Parameter `json:"parameters,omitempty"`

	// AnswerFormula recomputes the answer from instantiated givens. See
	// formula.ParseSet for accepted shapes.
	AnswerFormula json.RawMessage `json:"answerFormula,omitempty"`
	Answer        Answers         `json:"answer,omitempty"`

	Options           []Option        `json:"options,omitempty"`
	CommonMistakes    []CommonMistake `json:"commonMistakes,omitempty"`
	Schema            *DCLSchema      `json:"schema,omitempty"`
	RequiredEquations []string        `json:"requiredEquations,omitempty"`

	Hints       []string `json:"hints,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasFormula reports whether the template recomputes its answer.
func (t *Template) HasFormula() bool {
	return len(t.AnswerFormula) > 0 && string(t.AnswerFormula) != "null"
}

// Instance is a template with its parameters resolved for one seed. It is
// built once per presentation and not modified afterwards.
type Instance struct {
	Template

	Seed               int64            `json:"seed"`
	InstantiatedGivens map[string]Value `json:"instantiatedGivens"`
	RenderedStatement  string           `json:"renderedStatement"`
	InstantiatedAnswer Answers          `json:"instantiatedAnswer,omitempty"`
}
