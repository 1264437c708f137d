package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MobRulesGames/tabletop/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, -10, s.MinHeight)
	assert.Equal(t, 10, s.MaxHeight)
	assert.Equal(t, 10, s.BatchSize)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(s *config.Settings){
		"zero rows":          func(s *config.Settings) { s.Rows = 0 },
		"inverted heights":   func(s *config.Settings) { s.MinHeight, s.MaxHeight = 5, -5 },
		"default outside":    func(s *config.Settings) { s.DefaultHeight = 11 },
		"zero step":          func(s *config.Settings) { s.HeightStep = 0 },
		"empty brush range":  func(s *config.Settings) { s.MinBrush, s.MaxBrush = 4, 3 },
		"zero batch":         func(s *config.Settings) { s.BatchSize = 0 },
		"negative throttle":  func(s *config.Settings) { s.Throttle = -1 },
		"zero elevation":     func(s *config.Settings) { s.ElevationUnit = 0 },
		"flat tiles":         func(s *config.Settings) { s.TileHeight = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := config.Default()
			mutate(s)
			assert.ErrorIs(t, s.Validate(), config.ErrInvalid)
		})
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows": 7, "throttle": "50ms"}`), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Rows)
	assert.Equal(t, 20, s.Cols)
	assert.Equal(t, 50*time.Millisecond, s.Throttle.Std())
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"batch_size": -3}`), 0o644))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := config.Default()
	s.ElevationUnit = 12
	require.NoError(t, s.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestMergePrefersExplicitFlags(t *testing.T) {
	cli := config.Default()
	cli.Rows = 30
	cli.ElevationUnit = 4

	fromFile := config.Default()
	fromFile.Rows = 12
	fromFile.Cols = 14
	fromFile.ElevationUnit = 16

	config.Merge(cli, fromFile, map[string]bool{"rows": true})

	assert.Equal(t, 30, cli.Rows)
	assert.Equal(t, 14, cli.Cols)
	assert.Equal(t, 16.0, cli.ElevationUnit)
}
