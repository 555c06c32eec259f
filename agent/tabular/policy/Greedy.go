package policy

import (
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
	"github.com/gridlearn/gridlearn/valuetable"
)

// Greedy implements a greedy policy over a value table
type Greedy struct {
	table *valuetable.ValueTable
}

// NewGreedy returns a new Greedy policy
func NewGreedy(table *valuetable.ValueTable) *Greedy {
	return &Greedy{table}
}

// SelectAction selects the action with the largest value, breaking
// ties by the lowest action index
func (p *Greedy) SelectAction(t timestep.TimeStep) environment.Action {
	action, _ := p.table.BestAction(t.State)
	return action
}
