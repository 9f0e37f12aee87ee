package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokuro32/staticamaster/internal/compare"
	"github.com/rokuro32/staticamaster/internal/question"
)

func numericQuestion() *question.Instance {
	return instance(question.Template{
		ID:   "num-1",
		Type: question.TypeNumeric,
		Answer: question.Answers{{
			Value: 100, Unit: "N", Tolerance: 5, ToleranceType: compare.Percent,
		}},
		CommonMistakes: []question.CommonMistake{
			{Value: ptr(40), Feedback: "Avez-vous pris le bon bras de levier ?"},
			{Range: []float64{190, 210}, Feedback: "Vous avez doublé la force."},
			{Pattern: "^-", Feedback: "Signe inversé."},
		},
	})
}

func TestNumeric_Scenarios(t *testing.T) {
	strict := DefaultConfig()
	strict.RequireCorrectUnits = true
	noPartial := DefaultConfig()
	noPartial.EnablePartialCredit = false

	tests := []struct {
		name    string
		cfg     Config
		value   float64
		unit    string
		correct bool
		score   float64
		types   []FeedbackType
	}{
		{"within tolerance", DefaultConfig(), 103, "N", true, 100, []FeedbackType{FeedbackSuccess}},
		{"unit alias", DefaultConfig(), 100, "newtons", true, 100, []FeedbackType{FeedbackSuccess}},
		{"out of tolerance partial", DefaultConfig(), 120, "N", false, 30, []FeedbackType{FeedbackError}},
		{"out of tolerance no partial", noPartial, 120, "N", false, 0, []FeedbackType{FeedbackError}},
		{"far off", DefaultConfig(), 160, "N", false, 0, []FeedbackType{FeedbackError}},
		{"wrong unit tolerated", DefaultConfig(), 101, "kN", true, 100, []FeedbackType{FeedbackSuccess, FeedbackWarning}},
		{"wrong unit required", strict, 101, "kN", false, 80, []FeedbackType{FeedbackError}},
		{"missing unit required", strict, 101, "", false, 80, []FeedbackType{FeedbackError}},
		{"wrong sign", DefaultConfig(), -100, "N", false, 0, []FeedbackType{FeedbackHint, FeedbackError, FeedbackError}},
		{"mistake value", DefaultConfig(), 40.5, "N", false, 0, []FeedbackType{FeedbackHint, FeedbackError}},
		{"mistake range", DefaultConfig(), 200, "N", false, 0, []FeedbackType{FeedbackHint, FeedbackError}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.cfg).Validate(numericQuestion(), &UserAnswer{NumericValue: ptr(tt.value), Unit: tt.unit})
			assert.Equal(t, tt.correct, r.IsCorrect)
			assert.Equal(t, tt.score, r.Score)
			assert.Equal(t, tt.score > 0 && tt.score < 100, r.PartialCredit)
			assert.Equal(t, tt.types, feedbackTypes(r))
			require.NotNil(t, r.NumericValidation)
			assert.Nil(t, r.DCLValidation)
			assert.Nil(t, r.EquationValidation)
		})
	}
}

func TestNumeric_Details(t *testing.T) {
	r := New(DefaultConfig()).Validate(numericQuestion(), &UserAnswer{NumericValue: ptr(120), Unit: "N"})
	nv := r.NumericValidation
	require.NotNil(t, nv.PercentError)
	assert.InDelta(t, 20.0, *nv.PercentError, 1e-9)
	assert.False(t, nv.WithinTolerance)
	assert.True(t, nv.SignCorrect)
	assert.True(t, nv.UnitCorrect)
	assert.Equal(t, 5.0, nv.Tolerance)
	assert.Equal(t, compare.Percent, nv.ToleranceType)
}

func TestNumeric_MissingValue(t *testing.T) {
	r := New(DefaultConfig()).Validate(numericQuestion(), &UserAnswer{Unit: "N"})
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0.0, r.Score)
	require.Len(t, r.Feedback, 1)
	assert.Equal(t, "value", r.Feedback[0].Target)
}

func TestNumeric_DefaultsAndZeroExpected(t *testing.T) {
	q := instance(question.Template{ID: "n", Type: question.TypeNumeric, Answer: question.Answers{{Value: 100}}})
	e := New(DefaultConfig())
	assert.True(t, e.Validate(q, &UserAnswer{NumericValue: ptr(101.5)}).IsCorrect)
	assert.False(t, e.Validate(q, &UserAnswer{NumericValue: ptr(103)}).IsCorrect)

	zero := instance(question.Template{ID: "z", Type: question.TypeNumeric,
		Answer: question.Answers{{Value: 0, Tolerance: 1, ToleranceType: compare.Percent}}})
	r := e.Validate(zero, &UserAnswer{NumericValue: ptr(0.5)})
	assert.True(t, r.IsCorrect)
	assert.Nil(t, r.NumericValidation.PercentError)

	r = e.Validate(zero, &UserAnswer{NumericValue: ptr(3)})
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0.0, r.Score)
}

func TestNumeric_UsesInstantiatedAnswer(t *testing.T) {
	q := instance(question.Template{ID: "n", Type: question.TypeNumeric, Answer: question.Answers{{Value: 100}}})
	q.InstantiatedAnswer = question.Answers{{Value: 250}}
	r := New(DefaultConfig()).Validate(q, &UserAnswer{NumericValue: ptr(250)})
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 250.0, r.NumericValidation.ExpectedValue)
}

func TestNumeric_NoExpectedAnswer(t *testing.T) {
	q := instance(question.Template{ID: "n", Type: question.TypeNumeric})
	r := New(DefaultConfig()).Validate(q, &UserAnswer{NumericValue: ptr(1)})
	assert.False(t, r.IsCorrect)
	assert.Equal(t, []FeedbackType{FeedbackError}, feedbackTypes(r))
}

func TestMistakePattern_CompiledOnce(t *testing.T) {
	first, err := mistakePattern(`^-\d+$`)
	require.NoError(t, err)
	second, err := mistakePattern(`^-\d+$`)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.True(t, second.MatchString("-12"))

	_, err = mistakePattern("(")
	assert.Error(t, err)
}
