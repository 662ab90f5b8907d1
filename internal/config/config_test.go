package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Household")
	cfg.Profile.User = "alice"
	cfg.Forecast.HorizonMonths = 24
	cfg.Logging.JSON = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Budget")

	assert.Equal(t, "My Budget", cfg.Profile.Name)
	assert.Equal(t, "default", cfg.Profile.User)
	assert.Equal(t, "rules/category-rules.yaml", cfg.Categorization.RulesFile)
	assert.Equal(t, 8, cfg.Categorization.Workers)
	assert.Equal(t, "month", cfg.Analytics.Granularity)
	assert.Equal(t, 12, cfg.Forecast.HorizonMonths)
	assert.Equal(t, 3, cfg.Forecast.BaselineMonths)
	assert.Equal(t, "scenarios/scenarios.yaml", cfg.Forecast.ScenariosFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.JSON)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "profile:\n  name: Partial\nforecast:\n  horizon_months: 6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := LoadRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, "Partial", cfg.Profile.Name)
	assert.Equal(t, 6, cfg.Forecast.HorizonMonths)
	assert.Equal(t, 3, cfg.Forecast.BaselineMonths)
	assert.Equal(t, "default", cfg.Profile.User)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("profile: [unterminated\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", "rules", "r.yaml"), Resolve("/repo", "rules/r.yaml"))
	assert.Equal(t, "/etc/rules.yaml", Resolve("/repo", "/etc/rules.yaml"))
	assert.Equal(t, "", Resolve("/repo", ""))
}
