package categorize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRules_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules", "category-rules.yaml")
	require.NoError(t, SaveRules(path, DefaultRules()))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules()[0], rules[0])
	require.Len(t, rules, len(DefaultRules()))
	assert.Equal(t, "Other", rules[len(rules)-1].Category)

	e, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Categories(), e.Categories())
	assert.Equal(t, "Income", e.Categorize("Salary Deposit").Category)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	e, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Len(t, e.Categories(), 20)

	e, err = Load("")
	require.NoError(t, err)
	assert.Len(t, e.Categories(), 20)
}

func TestLoad_CustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, SaveRules(path, []Rule{
		{Category: "Coffee", Keywords: []string{"Latte"}, Patterns: []string{`\bespresso\b`}},
	}))

	e, err := Load(path)
	require.NoError(t, err)
	got := e.Categorize("ESPRESSO BAR")
	assert.Equal(t, "Coffee", got.Category)
	assert.InDelta(t, 0.3, got.Confidence, 1e-9)
	assert.Equal(t, "Coffee", e.Categorize("oat latte").Category)
}

func TestLoadRules_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, SaveRules(empty, nil))
	_, err := LoadRules(empty)
	assert.ErrorContains(t, err, "no categories")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, SaveRules(bad, []Rule{{Category: "X", Patterns: []string{"[unclosed"}}}))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "compiling pattern")
}
