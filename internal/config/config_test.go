package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.True(t, s.Dealiasing)
	assert.True(t, s.Superobing)
	assert.Equal(t, 500.0, s.ZSectorSize)
	assert.Equal(t, 50, s.MinGoodPoints)
	assert.Equal(t, []string{"localhost:9092"}, s.KafkaBrokers)
	assert.Equal(t, ":8080", s.HTTPAddr)
	assert.False(t, s.BugCompatMode)
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
dealiasing = false
z_sector_size = 250.0
min_good_points = 10
bug_compat_mode = true
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.False(t, s.Dealiasing)
	assert.Equal(t, 250.0, s.ZSectorSize)
	assert.Equal(t, 10, s.MinGoodPoints)
	assert.True(t, s.BugCompatMode)
	// Untouched fields keep their defaults.
	assert.True(t, s.Superobing)
}

func TestLoad_EnvOverridesTOML(t *testing.T) {
	t.Setenv("ACCORD_LOG_LEVEL", "debug")
	t.Setenv("ACCORD_HTTP_ADDR", ":9090")
	t.Setenv("ACCORD_DEALIASING", "false")
	t.Setenv("ACCORD_KAFKA_BROKERS", "broker1:9092,broker2:9092")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, ":9090", s.HTTPAddr)
	assert.False(t, s.Dealiasing)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, s.KafkaBrokers)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/settings.toml")
	require.Error(t, err)
}

func TestValidate_RejectsBadDealiasingSettings(t *testing.T) {
	s := Defaults()
	s.ZSectorSize = 0
	assert.Error(t, s.Validate())

	s = Defaults()
	s.MinGoodPoints = 0
	assert.Error(t, s.Validate())

	s = Defaults()
	s.MaxWind = -1
	assert.Error(t, s.Validate())
}

func TestValidate_AllowsMinGoodPointsOfOne(t *testing.T) {
	// Scenario S1 runs with min_good_points = 1; a 2-unknown fit over a
	// sector with a single point is underdetermined but handled by the
	// min-norm solve, not rejected outright.
	s := Defaults()
	s.MinGoodPoints = 1
	assert.NoError(t, s.Validate())
}

func TestValidate_RejectsBadSuperobingSettings(t *testing.T) {
	s := Defaults()
	s.RangeBinFactor = 0
	assert.Error(t, s.Validate())

	s = Defaults()
	s.MaxArcSize = 0
	assert.Error(t, s.Validate())
}

func TestValidate_SkipsDisabledStageChecks(t *testing.T) {
	s := Defaults()
	s.Dealiasing = false
	s.ZSectorSize = 0 // would fail if dealiasing were enabled
	assert.NoError(t, s.Validate())
}

func TestValidate_RequiresKafkaBrokers(t *testing.T) {
	s := Defaults()
	s.KafkaBrokers = nil
	assert.Error(t, s.Validate())
}
