// Package sarsa implements the tabular SARSA algorithm.
package sarsa

import (
	"fmt"

	"github.com/gridlearn/gridlearn/agent/tabular/policy"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
)

// Sarsa implements the on-policy SARSA algorithm with an ε-greedy
// behaviour policy
type Sarsa struct {
	*SarsaLearner
	behaviour *policy.EGreedy
}

// New creates a new Sarsa agent acting on and learning into table
func New(table *valuetable.ValueTable, c Config, seed uint64) (*Sarsa, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("new: nil value table")
	}

	behaviour := policy.NewEGreedy(c.Epsilon, seed, table)
	learner := NewSarsaLearner(table, behaviour, c.LearningRate, c.WallHit)

	return &Sarsa{learner, behaviour}, nil
}

// SelectAction returns the action already chosen for t by the last
// update, or samples one from the behaviour policy on the first step
// of an episode
func (s *Sarsa) SelectAction(t timestep.TimeStep) environment.Action {
	if a, ok := s.NextAction(t); ok {
		s.hasNext = false
		return a
	}
	return s.behaviour.SelectAction(t)
}

// SetEpsilon sets the exploration rate of the behaviour policy
func (s *Sarsa) SetEpsilon(e float64) {
	s.behaviour.SetEpsilon(e)
}

// Epsilon returns the exploration rate of the behaviour policy
func (s *Sarsa) Epsilon() float64 {
	return s.behaviour.Epsilon()
}
