package qlearning

import (
	"fmt"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm: Q(s,a) ← Q(s,a) + α(r + γ max_a' Q(s',a') − Q(s,a)).
// Transitions into the goal are terminal and use the target r.
type QLearner struct {
	table        *valuetable.ValueTable
	step         timestep.TimeStep
	action       environment.Action
	nextStep     timestep.TimeStep
	observed     bool
	learningRate float64
	wallHit      agent.WallHitMode
}

// NewQLearner creates a new QLearner learning into table
func NewQLearner(table *valuetable.ValueTable, learningRate float64,
	wallHit agent.WallHitMode) *QLearner {
	return &QLearner{
		table:        table,
		learningRate: learningRate,
		wallHit:      wallHit,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not a first "+
			"timestep", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action environment.Action,
	nextStep timestep.TimeStep) error {
	if !action.Valid() {
		return fmt.Errorf("observe: invalid action %v", action)
	}
	q.step = q.nextStep
	q.action = action
	q.nextStep = nextStep
	q.observed = true
	return nil
}

// Step updates the value of the last observed transition
func (q *QLearner) Step() error {
	if !q.observed {
		return fmt.Errorf("step: no transition observed")
	}
	if q.wallHit == agent.SuppressWallHits &&
		q.nextStep.Event == timestep.WallHit {
		return nil
	}

	target := q.nextStep.Reward
	if !q.nextStep.Terminal() {
		target += q.nextStep.Discount * q.table.MaxValue(q.nextStep.State)
	}
	return update(q.table, q.step.State, q.action, target, q.learningRate)
}

// EndEpisode forgets the last transition
func (q *QLearner) EndEpisode() {
	q.observed = false
}

// TdError returns the TD error of the last observed transition
func (q *QLearner) TdError() float64 {
	target := q.nextStep.Reward
	if !q.nextStep.Terminal() {
		target += q.nextStep.Discount * q.table.MaxValue(q.nextStep.State)
	}
	return target - q.table.Get(q.step.State, q.action)
}

func update(table *valuetable.ValueTable, state int, action environment.Action,
	target, learningRate float64) error {
	if table.IsWall(state) {
		return fmt.Errorf("update: state %d is a wall", state)
	}
	current := table.Get(state, action)
	table.Set(state, action, current+learningRate*(target-current))
	return nil
}
