package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollerball/session"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func TestLoadScriptDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - up: true\n    frames: 3\n  - jump: true\n"), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "level1", s.Level)
	assert.Equal(t, 0.02, s.DT)
	require.Len(t, s.Steps, 2)
	assert.True(t, s.Steps[0].Up)
	assert.Equal(t, 3, s.Steps[0].Frames)
	assert.True(t, s.Steps[1].Jump)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunIdle(t *testing.T) {
	s, err := LoadScript("testdata/idle.yaml")
	require.NoError(t, err)

	res, err := Run(s, Options{StopOnEnd: true})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Frames)
	assert.False(t, res.Finished)
	assert.Zero(t, res.Respawns)
	assert.InDelta(t, 0.5, res.Position[1], 1e-6)
	assert.Equal(t, session.DefaultStats(), res.Stats)
}

func TestRunIntoWall(t *testing.T) {
	s, err := LoadScript("testdata/wall.yaml")
	require.NoError(t, err)

	res, err := Run(s, Options{})
	require.NoError(t, err)
	assert.Equal(t, 350, res.Frames)
	assert.Zero(t, res.Respawns)
	// the rail's inner face is at x = 4
	assert.Less(t, res.Position[0], 3.7)
	assert.Greater(t, res.Position[0], 3.0)
	assert.InDelta(t, 0.5, res.Position[1], 1e-6)
}

func TestRunMaxFrames(t *testing.T) {
	s, err := LoadScript("testdata/wall.yaml")
	require.NoError(t, err)

	res, err := Run(s, Options{MaxFrames: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Frames)
	assert.InDelta(t, 0.2, res.Elapsed, 1e-9)
}

func TestRunUnknownLevel(t *testing.T) {
	_, err := Run(&Script{Level: "nope", DT: 0.02}, Options{})
	assert.Error(t, err)
}
