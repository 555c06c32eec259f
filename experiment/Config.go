package experiment

import (
	"fmt"
	"math"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/agent/tabular/qlearning"
	"github.com/gridlearn/gridlearn/agent/tabular/sarsa"
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/environment/gridworld"
	"github.com/gridlearn/gridlearn/utils/floatutils"
	"github.com/gridlearn/gridlearn/valuetable"
	"gonum.org/v1/gonum/spatial/r1"
)

// ErrConfiguration is wrapped by every error caused by invalid
// training parameters. It is the same sentinel as
// gridworld.ErrConfiguration so a single errors.Is check covers bad
// grids too.
var ErrConfiguration = gridworld.ErrConfiguration

// DecayMode determines how the exploration rate decays after each
// episode
type DecayMode string

const (
	// Multiplicative decay sets ε ← ε·rate
	Multiplicative DecayMode = "multiplicative"

	// Additive decay sets ε ← ε − rate
	Additive DecayMode = "additive"
)

// Decay describes the exploration schedule
type Decay struct {
	Mode DecayMode `yaml:"mode"`
	Rate float64   `yaml:"rate"`
}

// Next returns the exploration rate following e, never below floor
func (d Decay) Next(e, floor float64) float64 {
	switch d.Mode {
	case Additive:
		e -= d.Rate
	default:
		e *= d.Rate
	}
	return floatutils.Clip(e, floor, 1)
}

// InitConfig describes how the value table is initialized
type InitConfig struct {
	Policy string  `yaml:"policy"` // zero or noise
	Max    float64 `yaml:"max"`
}

// Config represents a configuration of a training session
type Config struct {
	Algorithm      agent.Type        `yaml:"algorithm"`
	LearningRate   float64           `yaml:"learningRate"`
	DiscountFactor float64           `yaml:"discountFactor"`
	Rewards        gridworld.Rewards `yaml:"rewards"`

	// WallHit is suppress or penalize, see agent.WallHitMode
	WallHit string `yaml:"wallHit"`

	Episodes               int     `yaml:"episodes"`
	InitialExplorationRate float64 `yaml:"initialExplorationRate"`
	ExplorationDecay       Decay   `yaml:"explorationDecay"`
	ExplorationFloor       float64 `yaml:"explorationFloor"`

	// LoopWindow is the number of recent states remembered by the
	// cycle detector, 0 selects environment.DefaultLoopWindow
	LoopWindow int  `yaml:"loopWindow"`
	AvoidLoops bool `yaml:"avoidLoops"`

	// ResetStrategy is fixed-start or random-floor
	ResetStrategy string     `yaml:"resetStrategy"`
	Init          InitConfig `yaml:"init"`
	Seed          uint64     `yaml:"seed"`

	// TraceEvery samples every TraceEvery-th episode for trace export,
	// 0 disables tracing. The last episode is always traced when
	// tracing is enabled.
	TraceEvery         int  `yaml:"traceEvery"`
	ExportInitialTable bool `yaml:"exportInitialTable"`

	// CheckpointEvery saves the value table every CheckpointEvery
	// episodes when a checkpoint directory is given, 0 disables it
	CheckpointEvery int `yaml:"checkpointEvery"`
}

// DefaultConfig returns the default configuration of an algorithm.
// SARSA decays exploration by subtraction and restarts episodes on
// random floor cells; Q-Learning decays exploration multiplicatively
// and always restarts on the start cell.
func DefaultConfig(algorithm agent.Type) Config {
	c := Config{
		Algorithm:              algorithm,
		LearningRate:           0.2,
		DiscountFactor:         0.9,
		Rewards:                gridworld.DefaultRewards(),
		WallHit:                agent.SuppressWallHits.String(),
		Episodes:               10000,
		InitialExplorationRate: 0.99,
		ExplorationDecay:       Decay{Mode: Multiplicative, Rate: 0.99},
		ExplorationFloor:       0.3,
		LoopWindow:             environment.DefaultLoopWindow,
		AvoidLoops:             true,
		ResetStrategy:          gridworld.FixedStart.String(),
		Init:                   InitConfig{Policy: valuetable.SmallUniformNoise.String(), Max: 0.01},
	}

	if algorithm == agent.Sarsa {
		c.ExplorationDecay = Decay{Mode: Additive, Rate: 0.001}
		c.ResetStrategy = gridworld.RandomFloor.String()
	}
	return c
}

// Field names a numeric Config field that can be bounded by the caller
type Field string

const (
	LearningRateField           Field = "learningRate"
	DiscountFactorField         Field = "discountFactor"
	GoalRewardField             Field = "goalReward"
	StepRewardField             Field = "stepReward"
	GiftRewardField             Field = "giftReward"
	EpisodesField               Field = "episodes"
	InitialExplorationRateField Field = "initialExplorationRate"
)

// Bounds holds caller supplied closed intervals for numeric fields.
// Fields without an entry are only checked against their intrinsic
// ranges.
type Bounds map[Field]r1.Interval

func (c Config) fieldValue(f Field) (float64, bool) {
	switch f {
	case LearningRateField:
		return c.LearningRate, true
	case DiscountFactorField:
		return c.DiscountFactor, true
	case GoalRewardField:
		return c.Rewards.Goal, true
	case StepRewardField:
		return c.Rewards.Step, true
	case GiftRewardField:
		return c.Rewards.Gift, true
	case EpisodesField:
		return float64(c.Episodes), true
	case InitialExplorationRateField:
		return c.InitialExplorationRate, true
	}
	return 0, false
}

func configError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func inRange(v, min, max float64, openMin bool) bool {
	if math.IsNaN(v) || v > max {
		return false
	}
	if openMin {
		return v > min
	}
	return v >= min
}

// Validate checks every field against its intrinsic range and against
// the caller supplied bounds. The returned error wraps
// ErrConfiguration.
func (c Config) Validate(bounds Bounds) error {
	if _, err := agent.NewConfig(c.Algorithm); err != nil {
		return configError("validate: unknown algorithm %q", c.Algorithm)
	}
	if !inRange(c.LearningRate, 0, 1, true) {
		return configError("validate: learning rate must be in (0, 1], "+
			"got %v", c.LearningRate)
	}
	if !inRange(c.DiscountFactor, 0, 1, true) {
		return configError("validate: discount factor must be in (0, 1], "+
			"got %v", c.DiscountFactor)
	}
	if c.Episodes < 1 {
		return configError("validate: episodes must be at least 1, got %d",
			c.Episodes)
	}
	if !inRange(c.InitialExplorationRate, 0, 1, false) {
		return configError("validate: initial exploration rate must be in "+
			"[0, 1], got %v", c.InitialExplorationRate)
	}
	if !inRange(c.ExplorationFloor, 0, 1, false) {
		return configError("validate: exploration floor must be in [0, 1], "+
			"got %v", c.ExplorationFloor)
	}
	if c.ExplorationFloor > c.InitialExplorationRate {
		return configError("validate: exploration floor %v exceeds the "+
			"initial exploration rate %v", c.ExplorationFloor,
			c.InitialExplorationRate)
	}

	switch c.ExplorationDecay.Mode {
	case Multiplicative:
		if !inRange(c.ExplorationDecay.Rate, 0, 1, true) {
			return configError("validate: multiplicative decay rate must "+
				"be in (0, 1], got %v", c.ExplorationDecay.Rate)
		}
	case Additive:
		if !inRange(c.ExplorationDecay.Rate, 0, 1, false) {
			return configError("validate: additive decay rate must be in "+
				"[0, 1], got %v", c.ExplorationDecay.Rate)
		}
	default:
		return configError("validate: unknown exploration decay mode %q",
			c.ExplorationDecay.Mode)
	}

	if c.LoopWindow != 0 && c.LoopWindow < 2 {
		return configError("validate: loop window must be at least 2, "+
			"got %d", c.LoopWindow)
	}
	if c.TraceEvery < 0 {
		return configError("validate: trace interval must not be "+
			"negative, got %d", c.TraceEvery)
	}
	if c.CheckpointEvery < 0 {
		return configError("validate: checkpoint interval must not be "+
			"negative, got %d", c.CheckpointEvery)
	}

	r := c.Rewards
	for name, v := range map[string]float64{
		"goal": r.Goal, "gift": r.Gift, "step": r.Step, "stall": r.Stall,
		"revisit": r.Revisit,
	} {
		if !floatutils.Finite(v) {
			return configError("validate: %s reward must be finite, got %v",
				name, v)
		}
	}

	wallHit, err := agent.ParseWallHitMode(c.WallHit)
	if err != nil {
		return configError("validate: %v", err)
	}
	if wallHit == agent.PenalizeWallHits && !floatutils.Finite(r.Wall) {
		return configError("validate: wall reward must be finite when "+
			"wall hits are penalized, got %v", r.Wall)
	}

	if _, err := gridworld.ParseResetStrategy(c.ResetStrategy); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if _, err := c.tableInit(); err != nil {
		return err
	}

	for field, interval := range bounds {
		v, ok := c.fieldValue(field)
		if !ok {
			return configError("validate: cannot bound unknown field %q",
				field)
		}
		if !floatutils.Within(v, interval) {
			return configError("validate: %s = %v outside of [%v, %v]",
				field, v, interval.Min, interval.Max)
		}
	}
	return nil
}

func (c Config) tableInit() (valuetable.Init, error) {
	switch c.Init.Policy {
	case valuetable.Zero.String():
		return valuetable.Init{Policy: valuetable.Zero, Seed: c.seed(initStream)}, nil
	case valuetable.SmallUniformNoise.String(), "":
		max := c.Init.Max
		if max == 0 {
			max = 0.01
		}
		if !floatutils.Finite(max) || max <= 0 {
			return valuetable.Init{}, configError("validate: noise bound "+
				"must be positive, got %v", c.Init.Max)
		}
		return valuetable.Init{
			Policy: valuetable.SmallUniformNoise,
			Max:    max,
			Seed:   c.seed(initStream),
		}, nil
	}
	return valuetable.Init{}, configError("validate: unknown init policy %q",
		c.Init.Policy)
}

// Random streams of a session, each seeded from Config.Seed
const (
	resetStream uint64 = iota
	policyStream
	initStream
)

// seed returns the seed of one random stream of the session
func (c Config) seed(stream uint64) uint64 {
	return c.Seed + stream
}

func (c Config) loopWindow() int {
	if c.LoopWindow == 0 {
		return environment.DefaultLoopWindow
	}
	return c.LoopWindow
}

// agentConfig returns the Config of the agent that learns in the
// session
func (c Config) agentConfig() (agent.Config, error) {
	wallHit, err := agent.ParseWallHitMode(c.WallHit)
	if err != nil {
		return nil, configError("agentConfig: %v", err)
	}

	base, err := agent.NewConfig(c.Algorithm)
	if err != nil {
		return nil, configError("agentConfig: %v", err)
	}

	switch base.(type) {
	case qlearning.Config:
		return qlearning.Config{
			Epsilon:      c.InitialExplorationRate,
			LearningRate: c.LearningRate,
			WallHit:      wallHit,
		}, nil
	case sarsa.Config:
		return sarsa.Config{
			Epsilon:      c.InitialExplorationRate,
			LearningRate: c.LearningRate,
			WallHit:      wallHit,
		}, nil
	}
	return nil, configError("agentConfig: unsupported algorithm %q",
		c.Algorithm)
}
