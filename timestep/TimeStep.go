// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only Last timesteps carry
// an EndType other than Running.
type EndType int

const (
	Running EndType = iota
	TerminalStateReached
	StepLimitReached
	CycleDetected
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case StepLimitReached:
		return "StepLimitReached"
	case CycleDetected:
		return "CycleDetected"
	default:
		return "Running"
	}
}

// Event describes what happened on the transition into a TimeStep.
// Rewards are selected from events, and learners use events to decide
// whether a transition should be learned from at all.
type Event int

const (
	// Start marks the first timestep of an episode, which has no
	// incoming transition
	Start Event = iota
	Move
	Goal
	WallHit
	Gift
	Stall
	Revisit
)

func (e Event) String() string {
	switch e {
	case Start:
		return "Start"
	case Move:
		return "Move"
	case Goal:
		return "Goal"
	case WallHit:
		return "WallHit"
	case Gift:
		return "Gift"
	case Stall:
		return "Stall"
	case Revisit:
		return "Revisit"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// TimeStep packages together a single timestep in an environment.
// State is the linear index of the agent's cell and Number counts the
// steps taken in the current episode.
type TimeStep struct {
	StepType StepType
	EndType  EndType
	Event    Event
	Reward   float64
	Discount float64
	State    int
	Number   int
}

// New returns a new TimeStep with EndType Running
func New(t StepType, r, d float64, state, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, State: state, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last of its episode with the given
// end type
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.EndType = e
}

// Terminal returns whether the TimeStep is a true terminal state, as
// opposed to a truncation of the episode
func (t *TimeStep) Terminal() bool {
	return t.EndType == TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Event: %v  |  Reward:  %.2f  |  " +
		"State: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Event, t.Reward, t.State, t.Number)
}
