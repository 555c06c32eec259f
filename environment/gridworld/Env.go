package gridworld

import (
	"errors"
	"fmt"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"golang.org/x/exp/rand"
)

// Env is an episodic environment of an agent moving on a GridWorld
// board
//
// Episodes end when the goal is reached or one of the Enders ends them.
// A step limit of rows*cols*2 steps is always enforced after all other
// Enders.
type Env struct {
	grid     *GridWorld
	rewards  Rewards
	strategy ResetStrategy
	discount float64
	rng      *rand.Rand
	enders   []environment.Ender
	maxSteps int

	previous    environment.Position
	hasPrevious bool
	currentStep timestep.TimeStep
}

// NewEnv creates a new Env on the board g and resets it, returning the
// first timestep of the first episode
func NewEnv(g *GridWorld, r Rewards, strategy ResetStrategy, discount float64,
	seed uint64, enders ...environment.Ender) (*Env, timestep.TimeStep, error) {
	if g == nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newEnv: nil grid")
	}

	rows, cols := g.Dims()
	maxSteps := rows * cols * 2
	all := make([]environment.Ender, 0, len(enders)+1)
	all = append(all, enders...)
	all = append(all, environment.NewStepLimit(maxSteps))

	e := &Env{
		grid:     g,
		rewards:  r,
		strategy: strategy,
		discount: discount,
		rng:      rand.New(rand.NewSource(seed)),
		enders:   all,
		maxSteps: maxSteps,
	}

	step, err := e.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newEnv: %w", err)
	}
	return e, step, nil
}

// Grid returns the board the Env acts on
func (e *Env) Grid() *GridWorld {
	return e.grid
}

// Rewards returns the reward scheme of the Env
func (e *Env) Rewards() Rewards {
	return e.rewards
}

// MaxSteps returns the episode step cap
func (e *Env) MaxSteps() int {
	return e.maxSteps
}

// CurrentTimeStep returns the last timestep produced by the Env
func (e *Env) CurrentTimeStep() timestep.TimeStep {
	return e.currentStep
}

// Reset places the agent with the Env's reset strategy and starts a
// new episode
func (e *Env) Reset() (timestep.TimeStep, error) {
	p, err := e.grid.ResetAgentPosition(e.strategy, e.rng)
	if err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: %w", err)
	}
	e.hasPrevious = false

	step := timestep.New(timestep.First, 0, e.discount, e.grid.State(p), 0)
	step.Event = timestep.Start
	e.currentStep = step

	for _, ender := range e.enders {
		if r, ok := ender.(environment.Resetter); ok {
			r.Reset(step)
		}
	}
	return step, nil
}

// Step takes one action in the environment and returns the next
// timestep and whether it ended the episode. Stepping after the
// episode has ended is an error.
func (e *Env) Step(action environment.Action) (timestep.TimeStep, bool, error) {
	if e.currentStep.Last() {
		return e.currentStep, true, fmt.Errorf("step: episode has ended")
	}
	if !action.Valid() {
		return e.currentStep, false, fmt.Errorf("step: invalid action %v", action)
	}

	from, ok := e.grid.AgentPosition()
	if !ok {
		return e.currentStep, false, fmt.Errorf("step: agent not on board")
	}

	m, err := e.grid.TryMove(from, action)
	if err != nil {
		var oob *OutOfBoundsError
		if errors.As(err, &oob) {
			panic(fmt.Sprintf("step: %v", err))
		}
		return e.currentStep, false, fmt.Errorf("step: %w", err)
	}

	event, reward := e.rewards.Evaluate(m, e.grid.Goal(), e.previous,
		e.hasPrevious)
	if err := e.grid.MarkAgentAt(m.To); err != nil {
		panic(fmt.Sprintf("step: %v", err))
	}
	if !m.Stalled() {
		e.previous = from
		e.hasPrevious = true
	}

	step := timestep.New(timestep.Mid, reward, e.discount, e.grid.State(m.To),
		e.currentStep.Number+1)
	step.Event = event

	if event == timestep.Goal {
		step.SetEnd(timestep.TerminalStateReached)
	} else {
		for _, ender := range e.enders {
			if ender.End(&step) {
				break
			}
		}
	}

	e.currentStep = step
	return step, step.Last(), nil
}
