// Package valuetable implements the tabular state-action value store
// learned by the tabular agents
package valuetable

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/utils/matutils"
	"github.com/gridlearn/gridlearn/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
)

// InitPolicy determines how learnable entries are initialized
type InitPolicy int

const (
	// Zero sets every learnable entry to 0. The first action in
	// enumeration order then wins every early tie.
	Zero InitPolicy = iota

	// SmallUniformNoise draws every learnable entry uniformly from
	// [0, max), breaking ties among untried actions
	SmallUniformNoise
)

func (p InitPolicy) String() string {
	switch p {
	case Zero:
		return "zero"
	case SmallUniformNoise:
		return "noise"
	}
	return fmt.Sprintf("InitPolicy(%d)", int(p))
}

// Init configures the initialization of a ValueTable
type Init struct {
	Policy InitPolicy
	Max    float64 // upper bound of SmallUniformNoise
	Seed   uint64
}

func (i Init) initializer() (weights.Initializer, error) {
	switch i.Policy {
	case Zero:
		return weights.NewZero(), nil
	case SmallUniformNoise:
		if i.Max <= 0 || math.IsInf(i.Max, 0) || math.IsNaN(i.Max) {
			return nil, fmt.Errorf("initializer: noise bound must be a "+
				"positive number, got %v", i.Max)
		}
		return weights.NewUniform(i.Max, i.Seed), nil
	}
	return nil, fmt.Errorf("initializer: unknown policy %v", i.Policy)
}

// ValueTable maps (state, action) pairs to values. Rows are states in
// linear index order and columns are actions in enumeration order.
// Every action of a wall state holds negative infinity and is never
// updated.
type ValueTable struct {
	values *mat.Dense
	walls  []bool
	init   Init
}

// New allocates a value table for the gridworld g and initializes it
func New(g *gridworld.GridWorld, init Init) (*ValueTable, error) {
	states := g.States()
	walls := make([]bool, states)
	for s := 0; s < states; s++ {
		walls[s] = g.IsWall(s)
	}

	v := &ValueTable{
		values: mat.NewDense(states, environment.Actions, nil),
		walls:  walls,
		init:   init,
	}
	if err := v.Reset(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return v, nil
}

// Reset re-initializes every entry with the table's init policy
func (v *ValueTable) Reset() error {
	initializer, err := v.init.initializer()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	initializer.Initialize(v.values)
	v.maskWalls()
	return nil
}

func (v *ValueTable) maskWalls() {
	inf := math.Inf(-1)
	for s, wall := range v.walls {
		if !wall {
			continue
		}
		for a := 0; a < environment.Actions; a++ {
			v.values.Set(s, a, inf)
		}
	}
}

// Dims returns the number of states and actions in the table
func (v *ValueTable) Dims() (states, actions int) {
	return v.values.Dims()
}

// IsWall returns whether state is a wall state
func (v *ValueTable) IsWall(state int) bool {
	return v.walls[state]
}

// Get returns the value of taking action in state
func (v *ValueTable) Get(state int, action environment.Action) float64 {
	return v.values.At(state, int(action))
}

// Set sets the value of taking action in state. Wall states cannot be
// set.
func (v *ValueTable) Set(state int, action environment.Action, value float64) {
	if v.walls[state] {
		panic(fmt.Sprintf("set: state %d is a wall", state))
	}
	v.values.Set(state, int(action), value)
}

// BestAction returns the greedy action in state along with its value.
// Ties are broken by the lowest action index. Wall states return Up
// with negative infinity.
func (v *ValueTable) BestAction(state int) (environment.Action, float64) {
	if v.walls[state] {
		return environment.Up, math.Inf(-1)
	}
	idx, value := matutils.RowMax(v.values, state)
	return environment.Action(idx), value
}

// MaxValue returns the largest value of any action in state
func (v *ValueTable) MaxValue(state int) float64 {
	_, value := v.BestAction(state)
	return value
}

// MaskInvalidActions returns, per state, whether each action is
// structurally invalid because it leads into a wall. Learned values
// are not touched.
func (v *ValueTable) MaskInvalidActions(g *gridworld.GridWorld) [][environment.Actions]bool {
	states, _ := v.Dims()
	masks := make([][environment.Actions]bool, states)
	for s := range masks {
		masks[s] = g.WallNeighbours(s)
	}
	return masks
}

// Matrix returns a copy of the table as a states x actions matrix
func (v *ValueTable) Matrix() *mat.Dense {
	return mat.DenseCopyOf(v.values)
}

// Clone returns a deep copy of the table
func (v *ValueTable) Clone() *ValueTable {
	walls := make([]bool, len(v.walls))
	copy(walls, v.walls)
	return &ValueTable{values: mat.DenseCopyOf(v.values), walls: walls, init: v.init}
}

func (v *ValueTable) String() string {
	return matutils.Format(v.values)
}

type tableData struct {
	Values []byte
	Walls  []bool
}

// GobEncode implements the gob.GobEncoder interface
func (v *ValueTable) GobEncode() ([]byte, error) {
	values, err := v.values.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(tableData{values, v.walls}); err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (v *ValueTable) GobDecode(in []byte) error {
	var data tableData
	dec := gob.NewDecoder(bytes.NewReader(in))
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	values := &mat.Dense{}
	if err := values.UnmarshalBinary(data.Values); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}
	if r, _ := values.Dims(); r != len(data.Walls) {
		return fmt.Errorf("gobDecode: %d states but %d wall flags", r,
			len(data.Walls))
	}

	v.values = values
	v.walls = data.Walls
	return nil
}
