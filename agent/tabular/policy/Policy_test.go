package policy

import (
	"testing"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T) *valuetable.ValueTable {
	t.Helper()
	g, err := gridworld.LoadString("X 0 S")
	require.NoError(t, err)
	table, err := valuetable.New(g, valuetable.Init{Policy: valuetable.Zero})
	require.NoError(t, err)
	return table
}

func TestEGreedyWithoutExploration(t *testing.T) {
	table := newTable(t)
	table.Set(1, environment.Right, 5)
	p := NewEGreedy(0, 1, table)

	step := timestep.New(timestep.Mid, 0, 1, 1, 1)
	for i := 0; i < 100; i++ {
		assert.Equal(t, environment.Right, p.SelectAction(step))
	}
}

func TestEGreedyFullExploration(t *testing.T) {
	p := NewEGreedy(1, 11, newTable(t))
	step := timestep.New(timestep.First, 0, 1, 0, 0)

	counts := make(map[environment.Action]int)
	for i := 0; i < 4000; i++ {
		a := p.SelectAction(step)
		require.True(t, a.Valid())
		counts[a]++
	}
	for _, a := range environment.AllActions() {
		assert.InDelta(t, 1000, counts[a], 200, "action %v", a)
	}

	p.SetEpsilon(0.3)
	assert.Equal(t, 0.3, p.Epsilon())
}

func TestGreedy(t *testing.T) {
	table := newTable(t)
	p := NewGreedy(table)
	step := timestep.New(timestep.First, 0, 1, 0, 0)
	assert.Equal(t, environment.Up, p.SelectAction(step))

	table.Set(0, environment.Down, 0.5)
	assert.Equal(t, environment.Down, p.SelectAction(step))
}
