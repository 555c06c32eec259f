package gridworld

import (
	"math"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
)

// Rewards represents the task of reaching the goal cell of a GridWorld
// while collecting gifts
//
// Wall is the reward reported for a wall hit. It is negative infinity
// unless wall hits are meant to be learned from, in which case it must
// be finite.
type Rewards struct {
	Goal    float64 `yaml:"goal"`
	Gift    float64 `yaml:"gift"`
	Step    float64 `yaml:"step"`
	Stall   float64 `yaml:"stall"`
	Revisit float64 `yaml:"revisit"`
	Wall    float64 `yaml:"wall"`

	// PenalizeRevisit enables the Revisit reward for moves straight
	// back into the previously occupied cell
	PenalizeRevisit bool `yaml:"penalizeRevisit"`
}

// DefaultRewards returns the rewards of the classic board
func DefaultRewards() Rewards {
	return Rewards{
		Goal:    100,
		Gift:    15,
		Step:    -1,
		Stall:   -5,
		Revisit: -3,
		Wall:    math.Inf(-1),
	}
}

// Evaluate classifies a move and returns its event and reward. The
// first matching rule wins: reaching goal, hitting a wall, collecting
// a gift, stalling in place, moving back to previous (only when
// PenalizeRevisit is set and hasPrevious is true) and finally a plain
// step.
func (r Rewards) Evaluate(m Move, goal, previous environment.Position,
	hasPrevious bool) (timestep.Event, float64) {
	switch {
	case m.To == goal:
		return timestep.Goal, r.Goal
	case m.HitWall:
		return timestep.WallHit, r.Wall
	case m.CollectedGift:
		return timestep.Gift, r.Gift
	case m.Stalled():
		return timestep.Stall, r.Stall
	case r.PenalizeRevisit && hasPrevious && m.To == previous:
		return timestep.Revisit, r.Revisit
	}
	return timestep.Move, r.Step
}
