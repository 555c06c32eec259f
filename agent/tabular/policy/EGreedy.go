// Package policy implements policies acting greedily with respect to a
// tabular value table
package policy

import (
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
	"golang.org/x/exp/rand"
)

// EGreedy implements an ε-greedy policy over a value table. With
// probability ε a uniformly random action is taken, otherwise the
// table's best action.
type EGreedy struct {
	table   *valuetable.ValueTable
	epsilon float64
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected
func NewEGreedy(e float64, seed uint64, table *valuetable.ValueTable) *EGreedy {
	source := rand.NewSource(seed)
	return &EGreedy{table: table, epsilon: e, rng: rand.New(source)}
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t timestep.TimeStep) environment.Action {
	if p.rng.Float64() < p.epsilon {
		return environment.Action(p.rng.Intn(environment.Actions))
	}
	action, _ := p.table.BestAction(t.State)
	return action
}

// SetEpsilon sets the exploration rate
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// Epsilon returns the exploration rate
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}
