// Package gridworld implements 2D gridworld environments loaded from
// text grids of walls, gifts, a start and a goal cell
package gridworld

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gridlearn/gridlearn/environment"
)

// GridWorld represents a gridworld board
//
// The board layout (walls, gifts, start and goal) is kept static. The
// agent position and the set of gifts already collected are tracked
// separately, and CellAt reports the live view of the board: the cell
// under the agent reads as Agent and collected gifts read as Floor.
type GridWorld struct {
	r, c      int
	layout    []Cell
	collected []bool
	start     int
	goal      int
	agent     int // -1 while a reset is in progress
}

// MaxLineLength is the longest grid row Load accepts, in bytes
const MaxLineLength = 1 << 20

// Load parses a grid from a reader. Each non-blank line is one row of
// space separated single character tokens using the symbols
// 0 (floor), 1 (wall), X (start), S (goal) and G (gift). Exactly one
// start and one goal cell must exist.
func Load(source io.Reader) (*GridWorld, error) {
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)

	var rows [][]Cell
	cols := -1
	for line := 1; scanner.Scan(); line++ {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if cols >= 0 && len(tokens) != cols {
			return nil, configErrorf("load: line %d has %d cells, want %d",
				line, len(tokens), cols)
		}
		cols = len(tokens)

		row := make([]Cell, cols)
		for j, token := range tokens {
			cell, err := parseCell(token)
			if err != nil {
				return nil, configErrorf("load: line %d: %v", line, err)
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, configErrorf("load: could not read grid: %v", err)
	}
	if len(rows) == 0 {
		return nil, configErrorf("load: empty grid")
	}

	return New(rows)
}

// LoadString parses a grid from a string, see Load
func LoadString(source string) (*GridWorld, error) {
	return Load(strings.NewReader(source))
}

// LoadFile parses a grid from the file at path, see Load
func LoadFile(path string) (*GridWorld, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, configErrorf("loadFile: could not open grid: %v", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loadFile: %s: %w", path, err)
	}
	return g, nil
}

// New creates a new GridWorld from rows of cells. The Agent cell marks
// the start position.
func New(rows [][]Cell) (*GridWorld, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, configErrorf("new: grid must have at least one cell")
	}
	r, c := len(rows), len(rows[0])

	g := &GridWorld{
		r:         r,
		c:         c,
		layout:    make([]Cell, 0, r*c),
		collected: make([]bool, r*c),
		start:     -1,
		goal:      -1,
	}

	var starts, goals int
	for i, row := range rows {
		if len(row) != c {
			return nil, configErrorf("new: row %d has %d cells, want %d",
				i, len(row), c)
		}
		for j, cell := range row {
			switch cell {
			case Agent:
				starts++
				g.start = i*c + j
				cell = Floor
			case Goal:
				goals++
				g.goal = i*c + j
			case Floor, Wall, Gift:
			default:
				return nil, configErrorf("new: unknown cell %v at [%d,%d]",
					cell, i, j)
			}
			g.layout = append(g.layout, cell)
		}
	}

	if starts != 1 {
		return nil, configErrorf("new: grid must have exactly one start "+
			"cell, found %d", starts)
	}
	if goals != 1 {
		return nil, configErrorf("new: grid must have exactly one goal "+
			"cell, found %d", goals)
	}

	g.agent = g.start
	return g, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// States returns the number of states in the GridWorld
func (g *GridWorld) States() int {
	return g.r * g.c
}

// Start returns the start position
func (g *GridWorld) Start() environment.Position {
	return g.PositionOf(g.start)
}

// Goal returns the goal position
func (g *GridWorld) Goal() environment.Position {
	return g.PositionOf(g.goal)
}

// AgentPosition returns the current agent position. The boolean is
// false while a reset is in progress.
func (g *GridWorld) AgentPosition() (environment.Position, bool) {
	if g.agent < 0 {
		return environment.Position{Row: -1, Col: -1}, false
	}
	return g.PositionOf(g.agent), true
}

// State returns the linear state index of a position
func (g *GridWorld) State(p environment.Position) int {
	return p.Row*g.c + p.Col
}

// PositionOf returns the position of a linear state index
func (g *GridWorld) PositionOf(state int) environment.Position {
	return environment.Position{Row: state / g.c, Col: state % g.c}
}

// Contains reports whether p lies inside the grid
func (g *GridWorld) Contains(p environment.Position) bool {
	return p.Row >= 0 && p.Row < g.r && p.Col >= 0 && p.Col < g.c
}

func (g *GridWorld) boundsError(row, col int) error {
	return &OutOfBoundsError{Row: row, Col: col, Rows: g.r, Cols: g.c}
}

// CellAt returns the live content of the cell at (row, col)
func (g *GridWorld) CellAt(row, col int) (Cell, error) {
	p := environment.Position{Row: row, Col: col}
	if !g.Contains(p) {
		return Floor, g.boundsError(row, col)
	}
	return g.cell(g.State(p)), nil
}

func (g *GridWorld) cell(state int) Cell {
	if state == g.agent {
		return Agent
	}
	if g.collected[state] {
		return Floor
	}
	return g.layout[state]
}

// IsWall reports whether state is a wall cell
func (g *GridWorld) IsWall(state int) bool {
	return g.layout[state] == Wall
}

// SetCell sets the content of the cell at (row, col). Setting Agent
// moves the agent marker there. The goal cell cannot be overwritten
// and no second goal can be created, and the agent cell cannot
// become a wall. Setting Floor on the agent cell clears the marker.
func (g *GridWorld) SetCell(row, col int, cell Cell) error {
	p := environment.Position{Row: row, Col: col}
	if !g.Contains(p) {
		return g.boundsError(row, col)
	}
	state := g.State(p)

	switch {
	case cell == Agent:
		return g.MarkAgentAt(p)
	case state == g.goal:
		if cell == Goal {
			return nil
		}
		return fmt.Errorf("setCell: cannot overwrite goal at %v", p)
	case cell == Goal:
		return fmt.Errorf("setCell: grid already has a goal at %v", g.Goal())
	case state == g.agent && cell == Wall:
		return fmt.Errorf("setCell: cannot place a wall under the agent at %v", p)
	case state == g.agent && cell == Floor:
		g.agent = -1
	}

	g.layout[state] = cell
	g.collected[state] = false
	return nil
}

// TryMove computes the result of taking action from position p. Moves
// off the grid leave the agent in place without a wall hit. Moving
// into a wall sets HitWall and leaves the agent in place. Moving onto
// a gift sets CollectedGift and consumes the gift. TryMove does not
// move the agent marker.
func (g *GridWorld) TryMove(p environment.Position, action environment.Action) (Move, error) {
	if !g.Contains(p) {
		return Move{From: p, To: p}, g.boundsError(p.Row, p.Col)
	}
	if !action.Valid() {
		return Move{From: p, To: p}, fmt.Errorf("tryMove: invalid action %v", action)
	}

	m := Move{From: p, To: p}
	dr, dc := action.Delta()
	target := environment.Position{Row: p.Row + dr, Col: p.Col + dc}
	if !g.Contains(target) {
		return m, nil
	}

	state := g.State(target)
	switch g.contentAt(state) {
	case Wall:
		m.HitWall = true
		return m, nil
	case Gift:
		m.CollectedGift = true
		g.collected[state] = true
	}
	m.To = target
	return m, nil
}

// contentAt returns the cell content ignoring the agent marker
func (g *GridWorld) contentAt(state int) Cell {
	if g.collected[state] {
		return Floor
	}
	return g.layout[state]
}

// MarkAgentAt moves the agent marker to p, clearing the previous one
func (g *GridWorld) MarkAgentAt(p environment.Position) error {
	if !g.Contains(p) {
		return g.boundsError(p.Row, p.Col)
	}
	state := g.State(p)
	if g.layout[state] == Wall {
		return fmt.Errorf("markAgentAt: %v is a wall", p)
	}
	g.agent = state
	return nil
}

// FloorCells returns the states currently showing Floor, the agent
// cell excluded
func (g *GridWorld) FloorCells() []int {
	var floors []int
	for state := range g.layout {
		if state != g.agent && g.contentAt(state) == Floor {
			floors = append(floors, state)
		}
	}
	return floors
}

// Restore puts every collected gift back and returns the agent to the
// start cell
func (g *GridWorld) Restore() {
	for i := range g.collected {
		g.collected[i] = false
	}
	g.agent = g.start
}

// Clone returns a deep copy of the GridWorld
func (g *GridWorld) Clone() *GridWorld {
	layout := make([]Cell, len(g.layout))
	copy(layout, g.layout)
	collected := make([]bool, len(g.collected))
	copy(collected, g.collected)

	return &GridWorld{
		r:         g.r,
		c:         g.c,
		layout:    layout,
		collected: collected,
		start:     g.start,
		goal:      g.goal,
		agent:     g.agent,
	}
}

// String returns the live board, one row per line of space separated
// symbols
func (g *GridWorld) String() string {
	var b strings.Builder
	for i := 0; i < g.r; i++ {
		for j := 0; j < g.c; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(g.cell(i*g.c + j).Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Move is the result of a single TryMove
type Move struct {
	From, To      environment.Position
	HitWall       bool
	CollectedGift bool
}

// Stalled reports whether the move left the agent in place
func (m Move) Stalled() bool {
	return m.From == m.To
}
