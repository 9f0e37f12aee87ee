package validation

import (
	"time"

	"github.com/rokuro32/staticamaster/internal/compare"
	"github.com/rokuro32/staticamaster/internal/question"
)

// UserAnswer is a learner's submission. Only the fields relevant to the
// question type are read.
type UserAnswer struct {
	QuestionID string    `json:"questionId"`
	Timestamp  time.Time `json:"timestamp"`

	// TimeSpentMs is the answering time in milliseconds, as the UI sends it.
	TimeSpentMs int64 `json:"timeSpent,omitempty"`

	SelectedOption string   `json:"selectedOption,omitempty"`
	NumericValue   *float64 `json:"numericValue,omitempty"`
	Unit           string   `json:"unit,omitempty"`

	// Points are drawn by wave sketch questions.
	Points []compare.Point `json:"points,omitempty"`

	Forces   []question.Force   `json:"forces,omitempty"`
	Supports []question.Support `json:"supports,omitempty"`

	SelectedEquations []string `json:"selectedEquations,omitempty"`

	// FinalAnswer is the calculation step of a multi-step question.
	FinalAnswer *float64 `json:"finalAnswer,omitempty"`
}

// FeedbackType classifies a feedback item for display.
type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackHint    FeedbackType = "hint"
	FeedbackInfo    FeedbackType = "info"
)

// Feedback is one itemized remark about a submission.
type Feedback struct {
	Type       FeedbackType `json:"type"`
	Target     string       `json:"target,omitempty"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// NumericValidation details a numeric comparison. PercentError is nil when
// the expected value is zero and the answer is not.
type NumericValidation struct {
	UserValue       float64               `json:"userValue"`
	ExpectedValue   float64               `json:"expectedValue"`
	Tolerance       float64               `json:"tolerance"`
	ToleranceType   compare.ToleranceKind `json:"toleranceType"`
	PercentError    *float64              `json:"percentError,omitempty"`
	WithinTolerance bool                  `json:"withinTolerance"`
	SignCorrect     bool                  `json:"signCorrect"`
	UnitCorrect     bool                  `json:"unitCorrect"`
	MatchedMistake  bool                  `json:"matchedMistake,omitempty"`
}

// DCLValidation details a free-body diagram comparison. Forces are listed
// by name.
type DCLValidation struct {
	CorrectForces   []string `json:"correctForces"`
	MissingForces   []string `json:"missingForces"`
	ExtraForces     []string `json:"extraForces"`
	WrongDirection  []string `json:"wrongDirection"`
	SupportsCorrect bool     `json:"supportsCorrect"`
	CorrectElements int      `json:"correctElements"`
	TotalElements   int      `json:"totalElements"`
}

// EquationValidation details an equation selection comparison.
type EquationValidation struct {
	Required []string `json:"required"`
	Selected []string `json:"selected"`
	Missing  []string `json:"missing"`
	Extra    []string `json:"extra"`
}

// Result is the outcome of validating one submission. Score is in [0, 100].
// Exactly one detail field is set for single-step questions; multi-step
// results carry the detail of every step that ran.
type Result struct {
	IsCorrect            bool       `json:"isCorrect"`
	Score                float64    `json:"score"`
	PartialCredit        bool       `json:"partialCredit"`
	Feedback             []Feedback `json:"feedback"`
	CompetenciesAssessed []string   `json:"competenciesAssessed"`

	NumericValidation  *NumericValidation  `json:"numericValidation,omitempty"`
	DCLValidation      *DCLValidation      `json:"dclValidation,omitempty"`
	EquationValidation *EquationValidation `json:"equationValidation,omitempty"`
}

func (r *Result) add(t FeedbackType, target, msg, suggestion string) {
	r.Feedback = append(r.Feedback, Feedback{Type: t, Target: target, Message: msg, Suggestion: suggestion})
}

// fail returns an incorrect, zero-score result carrying one error item.
func fail(target, msg, suggestion string) Result {
	r := Result{}
	r.add(FeedbackError, target, msg, suggestion)
	return r
}

// TimeSpent returns the answering time as a duration.
func (a *UserAnswer) TimeSpent() time.Duration {
	return time.Duration(a.TimeSpentMs) * time.Millisecond
}
