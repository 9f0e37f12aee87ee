package bank

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokuro32/staticamaster/internal/question"
)

func TestDefault(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"kinematics", "statics", "waves"}, b.Modules())
	assert.Equal(t, 15, b.Len())

	for _, typ := range []question.Type{
		question.TypeMCQ, question.TypeNumeric, question.TypeDCL,
		question.TypeEquation, question.TypeMulti,
	} {
		found := false
		for _, tmpl := range b.All() {
			if tmpl.Type == typ {
				found = true
				break
			}
		}
		assert.True(t, found, "no %s template in the default bank", typ)
	}
}

// Every template with a formula must produce a finite answer for any seed.
func TestDefault_FormulasEvaluate(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	for _, tmpl := range b.All() {
		if !tmpl.HasFormula() {
			continue
		}
		for seed := int64(0); seed < 50; seed++ {
			inst := question.Instantiate(tmpl, seed)
			require.NotEmpty(t, inst.InstantiatedAnswer, tmpl.ID)
			for _, a := range inst.InstantiatedAnswer {
				assert.NotZero(t, a.Value, "%s seed %d", tmpl.ID, seed)
			}
			assert.NotContains(t, inst.RenderedStatement, "{", tmpl.ID)
		}
	}
}

func TestBank_Lookups(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	tmpl, err := b.Get("stat-num-001")
	require.NoError(t, err)
	assert.Equal(t, "statics", tmpl.ModuleID)

	_, err = b.Get("nope")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.ID)

	statics := b.ByModule("statics")
	require.Len(t, statics, 7)
	for i := 1; i < len(statics); i++ {
		assert.Less(t, statics[i-1].ID, statics[i].ID)
	}

	assert.Len(t, b.Select("statics", ""), 7)
	assert.Len(t, b.Select("statics", "statique-2"), 2)
	assert.Empty(t, b.Select("statics", "meca-1"))
	assert.Len(t, b.ByCourse("meca-1"), 3)
	assert.Empty(t, b.ByModule("optics"))

	// Listings are copies.
	all := b.All()
	all[0] = nil
	assert.NotNil(t, b.All()[0])
}

const single = `{"id":"x-1","moduleId":"m","type":"numeric","statement":"s","answer":{"value":1}}`

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":       {Data: []byte(single)},
		"sub/b.json":   {Data: []byte(`[{"id":"x-2","moduleId":"m","courseId":"c","type":"mcq","statement":"s","options":[{"id":"a","text":"t","isCorrect":true}]}]`)},
		"README.md":    {Data: []byte("not a template")},
		"sub/notes.md": {Data: []byte("{")},
	}
	b, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"m"}, b.Modules())
	assert.Len(t, b.ByCourse("c"), 1)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"duplicate id", fstest.MapFS{
			"a.json": {Data: []byte(single)},
			"b.json": {Data: []byte(single)},
		}},
		{"schema violation", fstest.MapFS{
			"a.json": {Data: []byte(`{"id":"x","moduleId":"m","type":"essay","statement":"s"}`)},
		}},
		{"check failure", fstest.MapFS{
			"a.json": {Data: []byte(`{"id":"x","moduleId":"m","type":"mcq","statement":"s","options":[{"id":"a","text":"t"}]}`)},
		}},
		{"broken array", fstest.MapFS{
			"a.json": {Data: []byte(`[{"id":`)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReportsEveryBadTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`[
			{"id":"bad-1","moduleId":"m","type":"essay","statement":"s"},
			{"id":"bad-2","moduleId":"m","type":"dcl","statement":"s"}
		]`)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad-1")
	assert.Contains(t, err.Error(), "bad-2")
	var se *question.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q.json"), []byte(single), 0o644))

	b, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
