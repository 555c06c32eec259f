// Package qlearning implements the tabular Q-Learning algorithm.
package qlearning

import (
	"fmt"

	"github.com/gridlearn/gridlearn/agent/tabular/policy"
	"github.com/gridlearn/gridlearn/valuetable"
)

// QLearning implements the Q-Learning algorithm with an ε-greedy
// behaviour policy
type QLearning struct {
	*QLearner
	*policy.EGreedy
}

// New creates a new QLearning agent acting on and learning into table
func New(table *valuetable.ValueTable, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if table == nil {
		return nil, fmt.Errorf("new: nil value table")
	}

	behaviour := policy.NewEGreedy(c.Epsilon, seed, table)
	learner := NewQLearner(table, c.LearningRate, c.WallHit)

	return &QLearning{learner, behaviour}, nil
}
