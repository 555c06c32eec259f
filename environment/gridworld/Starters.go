package gridworld

import (
	"fmt"

	"github.com/gridlearn/gridlearn/environment"
	"golang.org/x/exp/rand"
)

// ResetStrategy determines where the agent is placed at the start of
// each episode
type ResetStrategy int

const (
	// FixedStart always places the agent on the start cell
	FixedStart ResetStrategy = iota

	// RandomFloor places the agent on a cell sampled uniformly among
	// the cells currently showing Floor. Gifts, walls and the goal are
	// never sampled, so each collected gift enlarges the pool.
	RandomFloor
)

func (r ResetStrategy) String() string {
	switch r {
	case FixedStart:
		return "fixed-start"
	case RandomFloor:
		return "random-floor"
	}
	return fmt.Sprintf("ResetStrategy(%d)", int(r))
}

// ParseResetStrategy converts the names returned by String back
// into a ResetStrategy
func ParseResetStrategy(s string) (ResetStrategy, error) {
	switch s {
	case "fixed-start", "":
		return FixedStart, nil
	case "random-floor":
		return RandomFloor, nil
	}
	return FixedStart, configErrorf("parseResetStrategy: unknown strategy %q", s)
}

// ResetAgentPosition clears the agent marker, picks a new position with
// the given strategy and marks the agent there. The start cell is used
// when RandomFloor finds no floor cell.
func (g *GridWorld) ResetAgentPosition(strategy ResetStrategy,
	rng *rand.Rand) (environment.Position, error) {
	if strategy == RandomFloor && rng == nil {
		return g.Start(), fmt.Errorf("resetAgentPosition: %v requires "+
			"a random source", strategy)
	}
	g.agent = -1

	state := g.start
	switch strategy {
	case FixedStart:
	case RandomFloor:
		if floors := g.FloorCells(); len(floors) > 0 {
			state = floors[rng.Intn(len(floors))]
		}
	default:
		g.agent = g.start
		return g.Start(), fmt.Errorf("resetAgentPosition: unknown "+
			"strategy %v", strategy)
	}

	p := g.PositionOf(state)
	if err := g.MarkAgentAt(p); err != nil {
		return p, fmt.Errorf("resetAgentPosition: %w", err)
	}
	return p, nil
}
