package gridworld

import "github.com/gridlearn/gridlearn/environment"

// CellDescriptor describes a single cell and which of its neighbours
// can be entered freely. A direction is open when the neighbour exists
// and currently shows Floor.
type CellDescriptor struct {
	Type   string `json:"Type"`
	Row    int    `json:"Row"`
	Column int    `json:"Column"`
	Up     bool   `json:"Up"`
	Down   bool   `json:"Down"`
	Left   bool   `json:"Left"`
	Right  bool   `json:"Right"`
}

// Descriptors returns a descriptor for every cell in row-major order
func (g *GridWorld) Descriptors() []CellDescriptor {
	out := make([]CellDescriptor, 0, g.States())
	for state := 0; state < g.States(); state++ {
		p := g.PositionOf(state)
		d := CellDescriptor{
			Type:   string(g.cell(state).Symbol()),
			Row:    p.Row,
			Column: p.Col,
		}
		d.Up = g.openToward(p, environment.Up)
		d.Down = g.openToward(p, environment.Down)
		d.Left = g.openToward(p, environment.Left)
		d.Right = g.openToward(p, environment.Right)
		out = append(out, d)
	}
	return out
}

func (g *GridWorld) openToward(p environment.Position, a environment.Action) bool {
	dr, dc := a.Delta()
	n := environment.Position{Row: p.Row + dr, Col: p.Col + dc}
	return g.Contains(n) && g.cell(g.State(n)) == Floor
}

// WallNeighbours returns, for state, whether each action in
// enumeration order leads into a wall
func (g *GridWorld) WallNeighbours(state int) [environment.Actions]bool {
	var out [environment.Actions]bool
	p := g.PositionOf(state)
	for i, a := range environment.AllActions() {
		dr, dc := a.Delta()
		n := environment.Position{Row: p.Row + dr, Col: p.Col + dc}
		out[i] = g.Contains(n) && g.layout[g.State(n)] == Wall
	}
	return out
}
