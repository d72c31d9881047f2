package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

func TestPerfectPlayerCompletesEveryGame(t *testing.T) {
	cfg := game.Defaults()
	for _, k := range game.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			rep, err := Run(cfg, Params{Game: k, Accuracy: 1, Trials: 5, Seed: 42})
			require.NoError(t, err)
			assert.Equal(t, 5, rep.Completed)
			assert.Equal(t, 5, rep.Won)
			assert.Zero(t, rep.ErrorPercent.Mean)
			assert.Equal(t, rep.Responses.P50, rep.Responses.Mean)
		})
	}
}

func TestPerfectArithmeticClimbsTheLadder(t *testing.T) {
	cfg := game.Defaults()
	rep, err := Run(cfg, Params{Game: game.Arithmetic, Accuracy: 1, Trials: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, float64(cfg.Arithmetic.MaxRounds), rep.Responses.Mean)
	assert.Equal(t, float64(cfg.Arithmetic.Ladder.TierFor(cfg.Arithmetic.MaxRounds-1)), rep.FinalTier.Mean)
	assert.Zero(t, rep.FinalTier.StdDev)

	hopeless, err := Run(cfg, Params{Game: game.Arithmetic, Accuracy: 0, Trials: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, hopeless.FinalTier.Mean)
}

func TestHopelessArithmeticIsLost(t *testing.T) {
	rep, err := Run(game.Defaults(), Params{Game: game.Arithmetic, Accuracy: 0, Trials: 4, Seed: 9})
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Completed)
	assert.Zero(t, rep.Won)
	assert.Equal(t, 100.0, rep.ErrorPercent.Mean)
}

func TestMistakesLengthenMemorySessions(t *testing.T) {
	cfg := game.Defaults()
	perfect, err := Run(cfg, Params{Game: game.Memory, Accuracy: 1, Trials: 20, Seed: 3})
	require.NoError(t, err)
	sloppy, err := Run(cfg, Params{Game: game.Memory, Accuracy: 0.9, Trials: 20, Seed: 3})
	require.NoError(t, err)

	assert.Greater(t, sloppy.Responses.Mean, perfect.Responses.Mean)
	assert.Greater(t, sloppy.ErrorPercent.Mean, 0.0)
}

func TestSameSeedSameReport(t *testing.T) {
	p := Params{Game: game.Language, Accuracy: 0.7, Trials: 10, Seed: 77}
	a, err := Run(game.Defaults(), p)
	require.NoError(t, err)
	b, err := Run(game.Defaults(), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAbandonedTrialsAreNotCompleted(t *testing.T) {
	rep, err := Run(game.Defaults(), Params{Game: game.Orientation, Accuracy: 0, Trials: 2, MaxResponses: 5})
	require.NoError(t, err)
	assert.Zero(t, rep.Completed)
	assert.Equal(t, 2, rep.Trials)
}

func TestRunRejectsBadParams(t *testing.T) {
	_, err := Run(game.Defaults(), Params{Game: game.Memory, Accuracy: 1.5, Trials: 1})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = Run(game.Defaults(), Params{Game: "chess", Accuracy: 1, Trials: 1})
	assert.ErrorIs(t, err, game.ErrUnknownGame)
}
