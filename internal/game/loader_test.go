package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "games"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games", name), []byte(body), 0o644))
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestLoaderWithoutFilesUsesDefaults(t *testing.T) {
	l := NewLoader(t.TempDir(), "")
	cfg, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoaderLayersProfileOverDefault(t *testing.T) {
	dir := t.TempDir()
	writeTuning(t, dir, "default.yaml", `
version: "2"
arithmetic:
  max_rounds: 12
memory:
  max_pattern: 6
`)
	writeTuning(t, dir, "clinic.yaml", `
arithmetic:
  max_rounds: 5
  timing:
    between: 500ms
`)

	cfg, err := NewLoader(dir, "clinic").Reload()
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.Version)
	assert.Equal(t, 5, cfg.Arithmetic.MaxRounds)
	assert.Equal(t, 500*time.Millisecond, cfg.Arithmetic.Timing.Between)
	assert.Equal(t, 6, cfg.Memory.MaxPattern)
	// untouched keys keep their built-in values
	assert.Equal(t, Defaults().Arithmetic.Ladder, cfg.Arithmetic.Ladder)
	assert.Equal(t, Defaults().Orientation, cfg.Orientation)
}

func TestLoaderRejectsInvalidTuning(t *testing.T) {
	dir := t.TempDir()
	writeTuning(t, dir, "default.yaml", `
arithmetic:
  ladder:
    - {upto: 5, tier: 2}
    - {upto: 3, tier: 3}
`)
	l := NewLoader(dir, "")
	_, err := l.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arithmetic.ladder")

	// Current falls back to the built-in tuning
	assert.Equal(t, Defaults(), l.Current())
}

func TestLoaderKeepsPreviousOnFailedReload(t *testing.T) {
	dir := t.TempDir()
	writeTuning(t, dir, "default.yaml", "language:\n  max_rounds: 7\n")
	l := NewLoader(dir, "")
	require.Equal(t, 7, l.Current().Language.MaxRounds)

	writeTuning(t, dir, "default.yaml", "language: [not, a, map]\n")
	_, err := l.Reload()
	require.Error(t, err)
	assert.Equal(t, 7, l.Current().Language.MaxRounds)
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Memory.MaxPattern = 0
	cfg.Spatial.Targets = nil
	cfg.Puzzle.Sets[0].Pieces = cfg.Puzzle.Sets[0].Pieces[:2]

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory.max_pattern")
	assert.Contains(t, err.Error(), "spatial.targets")
	assert.Contains(t, err.Error(), "puzzle.sets[0]")
}

func TestResolve(t *testing.T) {
	base := Defaults()
	goal := 4

	cfg := Resolve(base, Arithmetic, Overrides{Goal: &goal})
	assert.Equal(t, 4, cfg.Arithmetic.MaxRounds)
	assert.Equal(t, base.Language.MaxRounds, cfg.Language.MaxRounds)

	cfg = Resolve(base, Memory, Overrides{Goal: &goal, Instant: true})
	assert.Equal(t, 4, cfg.Memory.MaxPattern)
	assert.Equal(t, Timing{}, cfg.TimingFor(Memory))
	assert.Zero(t, cfg.Memory.Lit)

	// base is untouched
	assert.Equal(t, Defaults(), base)
}

func TestLadderFor(t *testing.T) {
	cfg := Defaults()
	o := cfg.LadderFor(Orientation)
	assert.Equal(t, 1, o.TierFor(7))
	assert.Equal(t, 2, o.TierFor(8))
	assert.Equal(t, 2, o.TierFor(14))

	a := cfg.LadderFor(Arithmetic)
	assert.Equal(t, 1, a.TierFor(2))
	assert.Equal(t, 2, a.TierFor(3))
	assert.Equal(t, 7, a.TierFor(13))

	l := cfg.LadderFor(Language)
	assert.Equal(t, 3, l.TierFor(0))
	assert.Equal(t, 4, l.TierFor(1))
	assert.Equal(t, 5, l.TierFor(9))

	assert.Equal(t, 1, cfg.LadderFor(Puzzle).TierFor(3))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Arithmetic")
	require.NoError(t, err)
	assert.Equal(t, Arithmetic, k)

	_, err = ParseKind("chess")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestShippedTuningIsValid(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("..", "..", "config"), "").Reload()
	require.NoError(t, err)
	assert.Equal(t, "2024.05", cfg.Version)
	assert.Equal(t, Defaults().Arithmetic.MaxRounds, cfg.Arithmetic.MaxRounds)
}

func TestWatcherReloadsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, "")
	w := NewWatcher(loader, time.Hour)

	type reload struct {
		cfg Config
		err error
	}
	var reloads []reload
	w.OnReload = func(cfg Config, err error) { reloads = append(reloads, reload{cfg, err}) }

	assert.False(t, w.poll())
	assert.False(t, w.poll())

	touch := func(body string, at time.Time) {
		writeTuning(t, dir, "default.yaml", body)
		path := filepath.Join(dir, "games", "default.yaml")
		require.NoError(t, os.Chtimes(path, at, at))
	}

	touch("version: v2\n", time.Now().Add(time.Minute))
	require.True(t, w.poll())
	w.reload()
	require.Len(t, reloads, 1)
	assert.NoError(t, reloads[0].err)
	assert.Equal(t, "v2", loader.Current().Version)

	touch("version: v3\nmemory:\n  colors: 0\n", time.Now().Add(2*time.Minute))
	require.True(t, w.poll())
	w.reload()
	require.Len(t, reloads, 2)
	assert.Error(t, reloads[1].err)
	assert.Equal(t, "v2", loader.Current().Version)

	assert.False(t, w.poll())
}
