package gridworld

import "fmt"

// Cell is the content of a single gridworld cell
type Cell int

const (
	Floor Cell = iota
	Wall
	// Agent marks the cell the agent currently occupies. In a grid
	// source it marks the start cell.
	Agent
	Goal
	Gift
)

// Symbols used by the text grid format
const (
	FloorSymbol byte = '0'
	WallSymbol  byte = '1'
	AgentSymbol byte = 'X'
	GoalSymbol  byte = 'S'
	GiftSymbol  byte = 'G'
)

// Symbol returns the grid source symbol of the cell
func (c Cell) Symbol() byte {
	switch c {
	case Wall:
		return WallSymbol
	case Agent:
		return AgentSymbol
	case Goal:
		return GoalSymbol
	case Gift:
		return GiftSymbol
	default:
		return FloorSymbol
	}
}

func (c Cell) String() string {
	switch c {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case Agent:
		return "Agent"
	case Goal:
		return "Goal"
	case Gift:
		return "Gift"
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}

// parseCell converts a grid source token into a Cell
func parseCell(token string) (Cell, error) {
	if len(token) != 1 {
		return Floor, fmt.Errorf("token %q is not a single character", token)
	}
	switch token[0] {
	case FloorSymbol:
		return Floor, nil
	case WallSymbol:
		return Wall, nil
	case AgentSymbol:
		return Agent, nil
	case GoalSymbol:
		return Goal, nil
	case GiftSymbol:
		return Gift, nil
	}
	return Floor, fmt.Errorf("unknown cell symbol %q", token)
}
