// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"fmt"

	"github.com/gridlearn/gridlearn/timestep"
)

// Action is one of the four axis-aligned moves an agent may take.
// Actions are enumerated in the order Up, Down, Left, Right, and this
// order is used everywhere ties must be broken.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// Actions is the number of actions available in every state
const Actions int = 4

// AllActions returns every action in enumeration order
func AllActions() [Actions]Action {
	return [Actions]Action{Up, Down, Left, Right}
}

// Valid returns whether the action is one of the four moves
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Delta returns the (row, column) offset of the action
func (a Action) Delta() (dr, dc int) {
	switch a {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Position is a (row, column) cell coordinate
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
}

// Ender determines when episodes should be ended. If End returns true,
// it has also set the timestep's StepType to timestep.Last and
// recorded the reason in its EndType.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// Resetter is an Ender which keeps per-episode state and must be told
// about the first timestep of each episode
type Resetter interface {
	Ender
	Reset(first timestep.TimeStep)
}

// Environment implements a simulated episodic environment
type Environment interface {
	Reset() (timestep.TimeStep, error) // Resets between episodes
	Step(action Action) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	MaxSteps() int
}
