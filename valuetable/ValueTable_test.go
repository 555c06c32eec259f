package valuetable

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const board = `
X 0 1
1 G 0
0 0 S
`

func newTable(t *testing.T, init Init) (*gridworld.GridWorld, *ValueTable) {
	t.Helper()
	g, err := gridworld.LoadString(board)
	require.NoError(t, err)
	v, err := New(g, init)
	require.NoError(t, err)
	return g, v
}

func TestWallsNegativeInfinity(t *testing.T) {
	inits := map[string]Init{
		"zero":  {Policy: Zero},
		"noise": {Policy: SmallUniformNoise, Max: 0.01, Seed: 7},
	}
	for name, init := range inits {
		t.Run(name, func(t *testing.T) {
			g, v := newTable(t, init)
			states, actions := v.Dims()
			require.Equal(t, 9, states)
			require.Equal(t, environment.Actions, actions)

			for s := 0; s < states; s++ {
				for _, a := range environment.AllActions() {
					value := v.Get(s, a)
					if g.IsWall(s) {
						assert.True(t, math.IsInf(value, -1), "state %d", s)
						continue
					}
					assert.False(t, math.IsInf(value, 0), "state %d", s)
					assert.GreaterOrEqual(t, value, 0.0)
					assert.LessOrEqual(t, value, 0.01)
				}
			}
		})
	}
}

func TestBestActionTieBreak(t *testing.T) {
	g, v := newTable(t, Init{Policy: Zero})
	for s := 0; s < g.States(); s++ {
		if g.IsWall(s) {
			continue
		}
		a, value := v.BestAction(s)
		assert.Equal(t, environment.Up, a, "state %d", s)
		assert.Equal(t, 0.0, value)
	}

	v.Set(0, environment.Left, 3)
	v.Set(0, environment.Right, 3)
	a, value := v.BestAction(0)
	assert.Equal(t, environment.Left, a)
	assert.Equal(t, 3.0, value)

	a, value = v.BestAction(2)
	assert.Equal(t, environment.Up, a)
	assert.True(t, math.IsInf(value, -1))
	assert.Panics(t, func() { v.Set(2, environment.Up, 1) })
}

func TestMaskInvalidActions(t *testing.T) {
	g, v := newTable(t, Init{Policy: Zero})
	v.Set(1, environment.Right, 42)

	masks := v.MaskInvalidActions(g)
	require.Len(t, masks, 9)
	assert.Equal(t, [4]bool{false, false, false, true}, masks[1])
	assert.Equal(t, [4]bool{false, true, false, false}, masks[0])
	assert.Equal(t, 42.0, v.Get(1, environment.Right))
}

func TestResetRestoresInitialValues(t *testing.T) {
	_, v := newTable(t, Init{Policy: SmallUniformNoise, Max: 0.5, Seed: 3})
	before := v.Matrix()

	v.Set(4, environment.Down, 17)
	require.NoError(t, v.Reset())
	assert.True(t, mat.Equal(before, v.Matrix()))
}

func TestInvalidInit(t *testing.T) {
	g, err := gridworld.LoadString(board)
	require.NoError(t, err)

	_, err = New(g, Init{Policy: SmallUniformNoise})
	assert.Error(t, err)
	_, err = New(g, Init{Policy: InitPolicy(5)})
	assert.Error(t, err)
}

func TestGob(t *testing.T) {
	_, v := newTable(t, Init{Policy: SmallUniformNoise, Max: 0.1, Seed: 1})
	v.Set(0, environment.Down, -2.5)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(v))

	var decoded ValueTable
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
	assert.Equal(t, -2.5, decoded.Get(0, environment.Down))
	assert.True(t, decoded.IsWall(2))

	assert.True(t, mat.Equal(v.Matrix(), decoded.Matrix()))
}
