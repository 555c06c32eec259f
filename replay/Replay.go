// Package replay runs the greedy policy of a trained value table from
// the start cell to demonstrate the learned path
package replay

import (
	"fmt"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/valuetable"
)

// Result is the outcome of a replay
type Result struct {
	// Positions starts with the start cell and holds the agent
	// position after every step
	Positions   []environment.Position
	Actions     []environment.Action
	ReachedGoal bool
	Steps       int
}

// Run replays the greedy policy of table on a copy of g starting from
// the start cell, until the goal is reached or rows*cols*2 steps have
// been taken. Neither g nor table is modified.
func Run(g *gridworld.GridWorld, table *valuetable.ValueTable) (Result, error) {
	if g == nil || table == nil {
		return Result{}, fmt.Errorf("run: nil grid or value table")
	}
	if states, _ := table.Dims(); states != g.States() {
		return Result{}, fmt.Errorf("run: table has %d states, grid has %d",
			states, g.States())
	}

	board := g.Clone()
	board.Restore()
	rows, cols := board.Dims()
	maxSteps := rows * cols * 2

	pos := board.Start()
	result := Result{Positions: []environment.Position{pos}}
	goal := board.Goal()

	for result.Steps < maxSteps && pos != goal {
		action, _ := table.BestAction(board.State(pos))
		m, err := board.TryMove(pos, action)
		if err != nil {
			return result, fmt.Errorf("run: step %d: %w", result.Steps+1, err)
		}
		if err := board.MarkAgentAt(m.To); err != nil {
			return result, fmt.Errorf("run: step %d: %w", result.Steps+1, err)
		}

		pos = m.To
		result.Steps++
		result.Actions = append(result.Actions, action)
		result.Positions = append(result.Positions, pos)
	}

	result.ReachedGoal = pos == goal
	return result, nil
}
