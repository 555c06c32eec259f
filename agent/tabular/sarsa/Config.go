package sarsa

import (
	"fmt"
	"math"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/valuetable"
)

func init() {
	agent.Register(agent.Sarsa, func() agent.Config { return Config{} })
}

// Config represents a configuration for the Sarsa agent
type Config struct {
	Epsilon      float64 // epsilon for behaviour policy
	LearningRate float64
	WallHit      agent.WallHitMode
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(table *valuetable.ValueTable,
	seed uint64) (agent.Explorer, error) {
	s, err := New(table, c, seed)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Sarsa)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 || math.IsNaN(c.Epsilon) {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 || math.IsNaN(c.LearningRate) {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if c.WallHit != agent.SuppressWallHits && c.WallHit != agent.PenalizeWallHits {
		return fmt.Errorf("unknown wall hit mode %v", c.WallHit)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.Sarsa
}
