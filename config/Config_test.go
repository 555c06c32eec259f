package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

const sarsaYAML = `
algorithm: sarsa
learningRate: 0.5
episodes: 250
rewards:
  goal: 50
  penalizeRevisit: true
explorationDecay:
  mode: multiplicative
  rate: 0.95
bounds:
  learningRate:
    min: 0.1
    max: 0.9
`

func TestParse(t *testing.T) {
	c, b, err := Parse(strings.NewReader(sarsaYAML))
	require.NoError(t, err)

	assert.Equal(t, agent.Sarsa, c.Algorithm)
	assert.Equal(t, 0.5, c.LearningRate)
	assert.Equal(t, 250, c.Episodes)
	assert.Equal(t, 50.0, c.Rewards.Goal)
	assert.True(t, c.Rewards.PenalizeRevisit)
	assert.Equal(t, experiment.Decay{Mode: experiment.Multiplicative,
		Rate: 0.95}, c.ExplorationDecay)

	// Unset fields keep the SARSA defaults
	def := experiment.DefaultConfig(agent.Sarsa)
	assert.Equal(t, def.DiscountFactor, c.DiscountFactor)
	assert.Equal(t, def.ResetStrategy, c.ResetStrategy)
	assert.Equal(t, def.Rewards.Step, c.Rewards.Step)
	assert.True(t, math.IsInf(c.Rewards.Wall, -1))

	assert.Equal(t, experiment.Bounds{
		experiment.LearningRateField: r1.Interval{Min: 0.1, Max: 0.9},
	}, b)
	assert.NoError(t, c.Validate(b))
}

func TestParseDefaults(t *testing.T) {
	c, b, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Equal(t, experiment.DefaultConfig(agent.QLearning), c)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "learningRat: 0.1\n",
		"bad type":      "episodes: many\n",
		"empty bound":   "bounds:\n  episodes:\n    min: 5\n    max: 1\n",
		"malformed":     "algorithm: [sarsa\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, experiment.ErrConfiguration))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sarsaYAML), 0o644))

	c, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, agent.Sarsa, c.Algorithm)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, experiment.ErrConfiguration))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(Prefix+LearningRateEnv, "0.7")
	t.Setenv(Prefix+EpisodesEnv, "42")
	t.Setenv(Prefix+AvoidLoopsEnv, "false")
	t.Setenv(Prefix+SeedEnv, "9")
	t.Setenv(Prefix+ResetStrategyEnv, "random-floor")

	c := experiment.DefaultConfig(agent.QLearning)
	require.NoError(t, ApplyEnv(&c, ""))
	assert.Equal(t, 0.7, c.LearningRate)
	assert.Equal(t, 42, c.Episodes)
	assert.False(t, c.AvoidLoops)
	assert.Equal(t, uint64(9), c.Seed)
	assert.Equal(t, "random-floor", c.ResetStrategy)
	assert.Equal(t, 0.9, c.DiscountFactor)
}

func TestApplyEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.env")
	env := "GRIDLEARN_GOAL_REWARD=250\nGRIDLEARN_EPISODES=7\n"
	require.NoError(t, os.WriteFile(path, []byte(env), 0o644))

	// The process environment wins over the file
	t.Setenv(Prefix+EpisodesEnv, "11")
	t.Setenv(Prefix+GoalRewardEnv, "")
	os.Unsetenv(Prefix + GoalRewardEnv)

	c := experiment.DefaultConfig(agent.Sarsa)
	require.NoError(t, ApplyEnv(&c, path))
	assert.Equal(t, 250.0, c.Rewards.Goal)
	assert.Equal(t, 11, c.Episodes)

	err := ApplyEnv(&c, filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, errors.Is(err, experiment.ErrConfiguration))
}

func TestApplyEnvErrors(t *testing.T) {
	for _, name := range []string{LearningRateEnv, EpisodesEnv,
		AvoidLoopsEnv, SeedEnv} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(Prefix+name, "not-a-number")
			c := experiment.DefaultConfig(agent.QLearning)
			err := ApplyEnv(&c, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, experiment.ErrConfiguration))
			assert.Contains(t, err.Error(), Prefix+name)
		})
	}
}
