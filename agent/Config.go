package agent

import (
	"fmt"

	"github.com/gridlearn/gridlearn/valuetable"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes, acting
	// on and learning into table
	CreateAgent(table *valuetable.ValueTable, seed uint64) (Explorer, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent created by the Config
	Type() Type
}

// WallHitMode determines how learners treat transitions that hit a
// wall
type WallHitMode int

const (
	// SuppressWallHits skips the update of transitions into a wall, so
	// the blocked action keeps its value instead of being pulled
	// toward the wall penalty
	SuppressWallHits WallHitMode = iota

	// PenalizeWallHits updates wall transitions like any other, using
	// the reward reported for the wall hit
	PenalizeWallHits
)

func (w WallHitMode) String() string {
	switch w {
	case SuppressWallHits:
		return "suppress"
	case PenalizeWallHits:
		return "penalize"
	}
	return fmt.Sprintf("WallHitMode(%d)", int(w))
}

// ParseWallHitMode converts the names returned by String back into a
// WallHitMode
func ParseWallHitMode(s string) (WallHitMode, error) {
	switch s {
	case "suppress", "":
		return SuppressWallHits, nil
	case "penalize":
		return PenalizeWallHits, nil
	}
	return SuppressWallHits, fmt.Errorf("parseWallHitMode: unknown mode %q", s)
}
