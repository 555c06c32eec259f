package sarsa

import (
	"math"
	"testing"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T, src string, c Config) (*valuetable.ValueTable, *Sarsa) {
	t.Helper()
	g, err := gridworld.LoadString(src)
	require.NoError(t, err)
	table, err := valuetable.New(g, valuetable.Init{Policy: valuetable.Zero})
	require.NoError(t, err)
	s, err := New(table, c, 1)
	require.NoError(t, err)
	return table, s
}

func step(state, n int, reward float64, event timestep.Event) timestep.TimeStep {
	ts := timestep.New(timestep.Mid, reward, 0.9, state, n)
	ts.Event = event
	return ts
}

func TestUpdateUsesChosenNextAction(t *testing.T) {
	table, s := newAgent(t, "X 0 S", Config{LearningRate: 0.5})
	table.Set(1, environment.Right, 10)

	first := timestep.New(timestep.First, 0, 0.9, 0, 0)
	require.NoError(t, s.ObserveFirst(first))
	assert.Equal(t, environment.Up, s.SelectAction(first))

	next := step(1, 1, -1, timestep.Move)
	require.NoError(t, s.Observe(environment.Right, next))
	require.NoError(t, s.Step())
	assert.InDelta(t, 4, table.Get(0, environment.Right), 1e-12)

	// The action bootstrapped from is the one taken next
	table.Set(1, environment.Left, 20)
	assert.Equal(t, environment.Right, s.SelectAction(next))
	assert.Equal(t, environment.Left, s.SelectAction(next))
}

func TestTerminalTarget(t *testing.T) {
	table, s := newAgent(t, "X 0 S", Config{LearningRate: 0.5})

	require.NoError(t, s.ObserveFirst(timestep.New(timestep.First, 0, 0.9, 1, 0)))
	goal := step(2, 1, 100, timestep.Goal)
	goal.SetEnd(timestep.TerminalStateReached)
	require.NoError(t, s.Observe(environment.Right, goal))
	require.NoError(t, s.Step())
	assert.InDelta(t, 50, table.Get(1, environment.Right), 1e-12)

	_, ok := s.NextAction(goal)
	assert.False(t, ok)
}

func TestWallHitSuppressed(t *testing.T) {
	table, s := newAgent(t, "X 1 S", Config{LearningRate: 0.5})

	require.NoError(t, s.ObserveFirst(timestep.New(timestep.First, 0, 0.9, 0, 0)))
	wall := step(0, 1, math.Inf(-1), timestep.WallHit)
	require.NoError(t, s.Observe(environment.Right, wall))
	require.NoError(t, s.Step())
	assert.Equal(t, 0.0, table.Get(0, environment.Right))

	// A next action is still chosen for the wall timestep
	_, ok := s.NextAction(wall)
	assert.True(t, ok)
}

func TestWallHitPenalized(t *testing.T) {
	table, s := newAgent(t, "X 1 S", Config{
		LearningRate: 0.5,
		WallHit:      agent.PenalizeWallHits,
	})

	require.NoError(t, s.ObserveFirst(timestep.New(timestep.First, 0, 0.9, 0, 0)))
	require.NoError(t, s.Observe(environment.Right, step(0, 1, -10, timestep.WallHit)))
	require.NoError(t, s.Step())
	assert.InDelta(t, -5, table.Get(0, environment.Right), 1e-12)
}

func TestEpsilon(t *testing.T) {
	_, s := newAgent(t, "X 0 S", Config{Epsilon: 0.5, LearningRate: 0.1})
	assert.Equal(t, 0.5, s.Epsilon())
	s.SetEpsilon(0.3)
	assert.Equal(t, 0.3, s.Epsilon())

	c, err := agent.NewConfig(agent.Sarsa)
	require.NoError(t, err)
	assert.True(t, c.ValidAgent(s))
	assert.Error(t, Config{LearningRate: 2}.Validate())
}
