package replay

import (
	"testing"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func setup(t *testing.T, src string) (*gridworld.GridWorld, *valuetable.ValueTable) {
	t.Helper()
	g, err := gridworld.LoadString(src)
	require.NoError(t, err)
	table, err := valuetable.New(g, valuetable.Init{Policy: valuetable.Zero})
	require.NoError(t, err)
	return g, table
}

func TestReplayFollowsGreedyPath(t *testing.T) {
	g, table := setup(t, "X 0 G\n1 1 S")
	table.Set(0, environment.Right, 1)
	table.Set(1, environment.Right, 1)
	table.Set(2, environment.Down, 1)

	res, err := Run(g, table)
	require.NoError(t, err)
	assert.True(t, res.ReachedGoal)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, []environment.Action{
		environment.Right, environment.Right, environment.Down,
	}, res.Actions)
	assert.Equal(t, environment.Position{Row: 1, Col: 2},
		res.Positions[len(res.Positions)-1])

	// The gift on the training board is untouched
	cell, err := g.CellAt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, gridworld.Gift, cell)
}

func TestReplayIsIdempotent(t *testing.T) {
	g, table := setup(t, "X 0 0\n0 1 0\n0 0 S")
	table.Set(0, environment.Down, 0.3)
	table.Set(3, environment.Down, 0.2)
	before := table.Matrix()

	first, err := Run(g, table)
	require.NoError(t, err)
	second, err := Run(g, table)
	require.NoError(t, err)

	assert.Equal(t, first.Positions, second.Positions)
	assert.True(t, mat.Equal(before, table.Matrix()))
}

func TestReplayStepCap(t *testing.T) {
	g, table := setup(t, "X 0 1 S")

	res, err := Run(g, table)
	require.NoError(t, err)
	assert.False(t, res.ReachedGoal)
	assert.Equal(t, 8, res.Steps)
	assert.Len(t, res.Positions, 9)
}

func TestReplayMismatch(t *testing.T) {
	g, _ := setup(t, "X 0 S")
	_, other := setup(t, "X 0 0 S")
	_, err := Run(g, other)
	assert.Error(t, err)
}
