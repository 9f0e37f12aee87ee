package question

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rokuro32/staticamaster/internal/compare"
)

func beamTemplate() *Template {
	return &Template{
		ID:           "stat-beam-001",
		ModuleID:     "statics",
		Competencies: []string{"equilibrium", "moments"},
		Difficulty:   Intermediate,
		Type:         TypeNumeric,
		Statement:    "Une force de {F} N agit à {theta}° sur une poutre de {L} m ({material}). Calculez le moment en A.",
		Givens: map[string]Value{
			"L":        Number(2),
			"material": Text("acier"),
		},
		Parameters: map[string]Parameter{
			"F":     {Min: 100, Max: 500, Step: 50},
			"theta": {Min: 15, Max: 75, Step: 0.5, DecimalPlaces: 1},
		},
		AnswerFormula: json.RawMessage(`"F*sin(rad(theta))*L"`),
		Answer: Answers{{
			Value:         0,
			Unit:          "N·m",
			Tolerance:     2,
			ToleranceType: compare.Percent,
		}},
	}
}

func TestInstantiate_Deterministic(t *testing.T) {
	tmpl := beamTemplate()
	a := Instantiate(tmpl, 42)
	b := Instantiate(tmpl, 42)
	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestInstantiate_SamplesWithinBounds(t *testing.T) {
	tmpl := beamTemplate()
	for seed := int64(0); seed < 200; seed++ {
		inst := Instantiate(tmpl, seed)
		f, ok := inst.InstantiatedGivens["F"].Float()
		require.True(t, ok)
		assert.GreaterOrEqual(t, f, 100.0)
		assert.LessOrEqual(t, f, 500.0)
		assert.Equal(t, 0.0, math.Mod(f-100, 50))

		theta, _ := inst.InstantiatedGivens["theta"].Float()
		assert.GreaterOrEqual(t, theta, 15.0)
		assert.LessOrEqual(t, theta, 75.0)
	}
}

func TestInstantiate_RecomputesAnswer(t *testing.T) {
	tmpl := beamTemplate()
	inst := Instantiate(tmpl, 7)

	f, _ := inst.InstantiatedGivens["F"].Float()
	theta, _ := inst.InstantiatedGivens["theta"].Float()
	want := f * math.Sin(theta*math.Pi/180) * 2

	require.Len(t, inst.InstantiatedAnswer, 1)
	assert.InDelta(t, want, inst.InstantiatedAnswer[0].Value, 1e-9)
	assert.Equal(t, "N·m", inst.InstantiatedAnswer[0].Unit)
	assert.Equal(t, 2.0, inst.InstantiatedAnswer[0].Tolerance)

	// The template itself is untouched.
	assert.Equal(t, 0.0, tmpl.Answer[0].Value)
	_, sampled := tmpl.Givens["F"]
	assert.False(t, sampled)
}

func TestInstantiate_RendersStatement(t *testing.T) {
	inst := Instantiate(beamTemplate(), 3)
	f := inst.InstantiatedGivens["F"].String()
	assert.Contains(t, inst.RenderedStatement, "Une force de "+f+" N")
	assert.Contains(t, inst.RenderedStatement, "poutre de 2 m (acier)")
	assert.NotContains(t, inst.RenderedStatement, "{")
}

func TestInstantiate_NoParametersKeepsAuthoredValues(t *testing.T) {
	tmpl := &Template{
		ID:            "kin-001",
		Type:          TypeNumeric,
		Statement:     "Une voiture roule à {v} m/s pendant {t} s. Distance ?",
		Givens:        map[string]Value{"v": Number(20), "t": Number(5)},
		AnswerFormula: json.RawMessage(`"v*t*1000"`),
		Answer:        Answers{{Value: 100, Unit: "m"}},
	}
	inst := Instantiate(tmpl, 99)
	assert.Equal(t, int64(99), inst.Seed)
	assert.Equal(t, 100.0, inst.InstantiatedAnswer[0].Value)
	assert.Equal(t, tmpl.Givens, inst.InstantiatedGivens)
	assert.Equal(t, "Une voiture roule à 20 m/s pendant 5 s. Distance ?", inst.RenderedStatement)
}

func TestInstantiate_NamedFormulaPairsByName(t *testing.T) {
	tmpl := &Template{
		ID:         "stat-support-002",
		Type:       TypeNumeric,
		Statement:  "F = {F}",
		Parameters: map[string]Parameter{"F": {Min: 100, Max: 100, Step: 10}},
		Givens:     map[string]Value{"theta": Number(60), "d": Number(2)},
		AnswerFormula: json.RawMessage(`{
			"M": "Rx*d",
			"Rx": "F*cos(rad(theta))",
			"Ry": "F*sin(rad(theta))"
		}`),
		Answer: Answers{
			{Name: "Ry", Unit: "N"},
			{Unit: "N"},
			{Name: "M", Unit: "N·m"},
		},
	}
	inst := Instantiate(tmpl, 1)
	require.Len(t, inst.InstantiatedAnswer, 3)
	assert.InDelta(t, 86.60254, inst.InstantiatedAnswer[0].Value, 1e-5) // by name
	assert.InDelta(t, 50.0, inst.InstantiatedAnswer[1].Value, 1e-9)     // position 1 -> Rx
	assert.InDelta(t, 100.0, inst.InstantiatedAnswer[2].Value, 1e-9)    // by name
}

func TestInstantiate_SingleAnswerFromNamedFormula(t *testing.T) {
	base := &Template{
		ID:         "x",
		Type:       TypeNumeric,
		Parameters: map[string]Parameter{"a": {Min: 2, Max: 2, Step: 1}},
		Answer:     Answers{{Unit: "N"}},
	}

	withAnswer := *base
	withAnswer.AnswerFormula = json.RawMessage(`{"answer": "b*2", "b": "a+1"}`)
	inst := Instantiate(&withAnswer, 1)
	assert.Equal(t, 6.0, inst.InstantiatedAnswer[0].Value)

	lastOutput := *base
	lastOutput.AnswerFormula = json.RawMessage(`{"b": "a+1", "c": "b*10"}`)
	inst = Instantiate(&lastOutput, 1)
	assert.Equal(t, 30.0, inst.InstantiatedAnswer[0].Value)
}

func TestInstantiate_ListFormulaPairsByPosition(t *testing.T) {
	tmpl := &Template{
		ID:            "x",
		Type:          TypeNumeric,
		Parameters:    map[string]Parameter{"m": {Min: 3, Max: 3, Step: 1}},
		Givens:        map[string]Value{"g": Number(10)},
		AnswerFormula: json.RawMessage(`["m*g", "m*g/2"]`),
		Answer:        Answers{{Unit: "N"}, {Unit: "N"}},
	}
	inst := Instantiate(tmpl, 5)
	assert.Equal(t, 30.0, inst.InstantiatedAnswer[0].Value)
	assert.Equal(t, 15.0, inst.InstantiatedAnswer[1].Value)
}

func TestInstantiate_FormulaWithoutAuthoredAnswer(t *testing.T) {
	tmpl := &Template{
		ID:            "x",
		Type:          TypeNumeric,
		Parameters:    map[string]Parameter{"m": {Min: 3, Max: 3, Step: 1}},
		AnswerFormula: json.RawMessage(`{"W": "m*10"}`),
	}
	inst := Instantiate(tmpl, 5)
	require.Len(t, inst.InstantiatedAnswer, 1)
	assert.Equal(t, Answer{Name: "W", Value: 30}, inst.InstantiatedAnswer[0])
}

func TestInstantiate_MalformedFormulaFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	in := NewInstantiator(WithLogger(zap.New(core)))

	tmpl := beamTemplate()
	tmpl.Answer = Answers{{Value: 123, Unit: "N·m"}}
	tmpl.AnswerFormula = json.RawMessage(`"F * unknown"`)

	inst := in.Instantiate(tmpl, 42)
	assert.Equal(t, 123.0, inst.InstantiatedAnswer[0].Value)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "stat-beam-001", entry.ContextMap()["question_id"])
	assert.Equal(t, int64(42), entry.ContextMap()["seed"])

	tmpl.AnswerFormula = json.RawMessage(`{"a": "b", "b": "a"}`)
	inst = in.Instantiate(tmpl, 42)
	assert.Equal(t, 123.0, inst.InstantiatedAnswer[0].Value)
	assert.Equal(t, 2, logs.Len())
}

func TestInstantiate_UnmatchedPlaceholderLeftAsIs(t *testing.T) {
	tmpl := &Template{ID: "x", Statement: "Masse {m} kg, hauteur {h} m"}
	inst := Instantiate(tmpl, 0)
	assert.Equal(t, "Masse {m} kg, hauteur {h} m", inst.RenderedStatement)
}

func TestDaily_SameDaySameVariant(t *testing.T) {
	day := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	morning := NewInstantiator(WithClock(func() time.Time { return day }))
	evening := NewInstantiator(WithClock(func() time.Time { return day.Add(12 * time.Hour) }))
	tomorrow := NewInstantiator(WithClock(func() time.Time { return day.Add(24 * time.Hour) }))

	tmpl := beamTemplate()
	assert.Equal(t, morning.Daily(tmpl), evening.Daily(tmpl))
	assert.NotEqual(t, morning.DailySeed(tmpl), tomorrow.DailySeed(tmpl))
}

func TestInstantiate_ChoicesSurviveWithOptions(t *testing.T) {
	tmpl := &Template{
		ID:        "mcq-opts",
		Type:      TypeMCQ,
		Statement: "Unité de moment ?",
		Options: []Option{
			{ID: "a", Text: "N"},
			{ID: "b", Text: "N·m", IsCorrect: true},
		},
	}
	opts := []InstantiatorOption{
		WithLogger(zap.NewNop()),
		WithClock(func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }),
	}

	inst := NewInstantiator(opts...).Instantiate(tmpl, 3)
	require.Len(t, inst.Options, 2)
	assert.True(t, inst.Options[1].IsCorrect)
	assert.Equal(t, tmpl.Statement, inst.RenderedStatement)
}
