package quiz

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokuro32/staticamaster/internal/bank"
	"github.com/rokuro32/staticamaster/internal/question"
)

func seed(v int64) *int64 { return &v }

func defaultBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Default()
	require.NoError(t, err)
	return b
}

func ids(q *Quiz) []string {
	out := make([]string, len(q.Questions))
	for i, inst := range q.Questions {
		out[i] = inst.ID
	}
	return out
}

func TestGenerate_Deterministic(t *testing.T) {
	b := defaultBank(t)
	req := Request{ModuleID: "statics", Count: 4, Seed: seed(1234)}

	a, err := Generate(b, req)
	require.NoError(t, err)
	c, err := Generate(b, req)
	require.NoError(t, err)

	assert.Equal(t, a, c)
	assert.Len(t, a.Questions, 4)
	assert.Equal(t, int64(1234), a.Seed)
}

func TestGenerate_SeedOffsets(t *testing.T) {
	b := defaultBank(t)
	q, err := Generate(b, Request{ModuleID: "kinematics", Count: 10, Seed: seed(500)})
	require.NoError(t, err)

	require.Len(t, q.Questions, 4) // fewer candidates than requested
	for i, inst := range q.Questions {
		assert.Equal(t, int64(500+i), inst.Seed)
		tmpl, err := b.Get(inst.ID)
		require.NoError(t, err)
		assert.Equal(t, question.Instantiate(tmpl, int64(500+i)), inst)
	}
}

func TestGenerate_NoDuplicatesAndShuffled(t *testing.T) {
	b := defaultBank(t)
	orders := map[string]bool{}
	for s := int64(0); s < 20; s++ {
		q, err := Generate(b, Request{ModuleID: "statics", Count: 7, Seed: seed(s)})
		require.NoError(t, err)
		seen := map[string]bool{}
		for _, id := range ids(q) {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
		assert.Len(t, seen, 7)
		orders[strings.Join(ids(q), ",")] = true
	}
	assert.Greater(t, len(orders), 1)
}

func TestGenerate_CourseFilter(t *testing.T) {
	q, err := Generate(defaultBank(t), Request{ModuleID: "statics", CourseID: "statique-2", Seed: seed(1)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"stat-ms-001", "stat-num-003"}, ids(q))
}

func TestGenerate_DailySeed(t *testing.T) {
	b := defaultBank(t)
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	clock := func(d time.Duration) Option {
		return WithClock(func() time.Time { return day.Add(d) })
	}

	morning, err := Generate(b, Request{ModuleID: "waves"}, clock(0))
	require.NoError(t, err)
	evening, err := Generate(b, Request{ModuleID: "waves"}, clock(10*time.Hour))
	require.NoError(t, err)
	next, err := Generate(b, Request{ModuleID: "waves"}, clock(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, morning, evening)
	assert.NotEqual(t, morning.Seed, next.Seed)
}

func TestGenerate_Errors(t *testing.T) {
	b := defaultBank(t)

	_, err := Generate(b, Request{})
	assert.Error(t, err)

	_, err = Generate(b, Request{ModuleID: "optics"})
	assert.True(t, errors.Is(err, ErrNoQuestions))
}
