package environment

import (
	"testing"

	"github.com/gridlearn/gridlearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionDelta(t *testing.T) {
	tests := []struct {
		action Action
		dr, dc int
	}{
		{Up, -1, 0},
		{Down, 1, 0},
		{Left, 0, -1},
		{Right, 0, 1},
		{Action(9), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			dr, dc := tt.action.Delta()
			assert.Equal(t, tt.dr, dr)
			assert.Equal(t, tt.dc, dc)
		})
	}
	assert.False(t, Action(-1).Valid())
	assert.Equal(t, [Actions]Action{Up, Down, Left, Right}, AllActions())
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := timestep.New(timestep.Mid, 0, 1, 0, 2)
	assert.False(t, limit.End(&step))
	assert.True(t, step.Mid())

	step.Number = 3
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, timestep.StepLimitReached, step.EndType)
}

func TestLoopDetectorFlagsFourthTransition(t *testing.T) {
	const s0, s1 = 0, 1
	l := NewLoopDetector(4)
	l.Reset(timestep.New(timestep.First, 0, 1, s0, 0))

	next := []int{s1, s0, s1, s0}
	for i, state := range next {
		step := timestep.New(timestep.Mid, -1, 1, state, i+1)
		ended := l.End(&step)
		if i < 3 {
			require.False(t, ended, "transition %d flagged early", i+1)
			continue
		}
		assert.True(t, ended)
		assert.Equal(t, timestep.CycleDetected, step.EndType)
	}
}

func TestLoopDetectorIgnoresForwardProgress(t *testing.T) {
	l := NewLoopDetector(4)
	l.Reset(timestep.New(timestep.First, 0, 1, 0, 0))

	for state := 1; state < 10; state++ {
		step := timestep.New(timestep.Mid, -1, 1, state, state)
		assert.False(t, l.End(&step))
	}
	assert.Equal(t, []int{6, 7, 8, 9}, l.Window())
}

func TestLoopDetectorRepeatedStall(t *testing.T) {
	l := NewLoopDetector(0)
	l.Reset(timestep.New(timestep.First, 0, 1, 5, 0))

	var flagged int
	for i := 1; i <= 4; i++ {
		step := timestep.New(timestep.Mid, -5, 1, 5, i)
		if l.End(&step) {
			flagged = i
			break
		}
	}
	assert.Equal(t, 4, flagged)
}

func TestLoopDetectorSkipsWallHits(t *testing.T) {
	l := NewLoopDetector(4)
	l.Reset(timestep.New(timestep.First, 0, 1, 5, 0))

	for i := 1; i <= 20; i++ {
		step := timestep.New(timestep.Mid, -1, 1, 5, i)
		step.Event = timestep.WallHit
		require.False(t, l.End(&step), "wall hit %d flagged", i)
	}
	assert.Equal(t, []int{5}, l.Window())

	// A real back-track is still detected once the window fills
	var flagged int
	for i, state := range []int{6, 5, 6, 5} {
		step := timestep.New(timestep.Mid, -1, 1, state, 21+i)
		if l.End(&step) {
			flagged = i + 1
		}
	}
	assert.Equal(t, 4, flagged)
}
