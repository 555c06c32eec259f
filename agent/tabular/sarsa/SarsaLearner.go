package sarsa

import (
	"fmt"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
)

// SarsaLearner implements the update functionality for the SARSA
// algorithm: Q(s,a) ← Q(s,a) + α(r + γ Q(s',a') − Q(s,a)), where a' is
// the action the behaviour policy takes in s'.
//
// The next action is chosen by Step before the update is applied and
// is then handed out by NextAction so it is the action taken on the
// following step.
type SarsaLearner struct {
	table        *valuetable.ValueTable
	behaviour    agent.Policy
	step         timestep.TimeStep
	action       environment.Action
	nextStep     timestep.TimeStep
	observed     bool
	learningRate float64
	wallHit      agent.WallHitMode

	nextAction environment.Action
	hasNext    bool
}

// NewSarsaLearner creates a new SarsaLearner learning into table and
// choosing next actions with behaviour
func NewSarsaLearner(table *valuetable.ValueTable, behaviour agent.Policy,
	learningRate float64, wallHit agent.WallHitMode) *SarsaLearner {
	return &SarsaLearner{
		table:        table,
		behaviour:    behaviour,
		learningRate: learningRate,
		wallHit:      wallHit,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (s *SarsaLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not a first "+
			"timestep", t.Number)
	}
	s.step = timestep.TimeStep{}
	s.nextStep = t
	s.observed = false
	s.hasNext = false
	return nil
}

// Observe observes and records any timestep other than the first timestep
func (s *SarsaLearner) Observe(action environment.Action,
	nextStep timestep.TimeStep) error {
	if !action.Valid() {
		return fmt.Errorf("observe: invalid action %v", action)
	}
	s.step = s.nextStep
	s.action = action
	s.nextStep = nextStep
	s.observed = true
	s.hasNext = false
	return nil
}

// Step chooses the next action in the next state, then updates the
// value of the last observed transition
func (s *SarsaLearner) Step() error {
	if !s.observed {
		return fmt.Errorf("step: no transition observed")
	}

	target := s.nextStep.Reward
	if !s.nextStep.Terminal() {
		s.nextAction = s.behaviour.SelectAction(s.nextStep)
		s.hasNext = !s.nextStep.Last()
		target += s.nextStep.Discount * s.table.Get(s.nextStep.State,
			s.nextAction)
	}

	if s.wallHit == agent.SuppressWallHits &&
		s.nextStep.Event == timestep.WallHit {
		return nil
	}

	state := s.step.State
	if s.table.IsWall(state) {
		return fmt.Errorf("step: state %d is a wall", state)
	}
	current := s.table.Get(state, s.action)
	s.table.Set(state, s.action, current+s.learningRate*(target-current))
	return nil
}

// NextAction returns the action chosen for t by the last Step, if t is
// the timestep that Step chose it for
func (s *SarsaLearner) NextAction(t timestep.TimeStep) (environment.Action, bool) {
	if !s.hasNext || t.State != s.nextStep.State || t.Number != s.nextStep.Number {
		return environment.Up, false
	}
	return s.nextAction, true
}

// EndEpisode forgets the last transition and the chosen next action
func (s *SarsaLearner) EndEpisode() {
	s.observed = false
	s.hasNext = false
}
