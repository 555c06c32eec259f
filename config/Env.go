package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/experiment"
	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

// Prefix is the prefix of every environment variable read by ApplyEnv
const Prefix = "GRIDLEARN_"

// Environment variable names, without Prefix
const (
	AlgorithmEnv       = "ALGORITHM"
	LearningRateEnv    = "LEARNING_RATE"
	DiscountFactorEnv  = "DISCOUNT_FACTOR"
	EpisodesEnv        = "EPISODES"
	ExplorationEnv     = "EXPLORATION_RATE"
	ExplorationMinEnv  = "EXPLORATION_FLOOR"
	GoalRewardEnv      = "GOAL_REWARD"
	StepRewardEnv      = "STEP_REWARD"
	GiftRewardEnv      = "GIFT_REWARD"
	WallHitEnv         = "WALL_HIT"
	ResetStrategyEnv   = "RESET_STRATEGY"
	AvoidLoopsEnv      = "AVOID_LOOPS"
	PenalizeRevisitEnv = "PENALIZE_REVISIT"
	SeedEnv            = "SEED"
	TraceEveryEnv      = "TRACE_EVERY"
)

// ApplyEnv overrides fields of c with the GRIDLEARN_* environment
// variables that are set. When envFile is not empty it is loaded into
// the environment first with godotenv; otherwise a .env file in the
// working directory is loaded if one exists. Variables already set in
// the process environment take precedence over the file.
//
// Setting GRIDLEARN_ALGORITHM only switches the algorithm, it does not
// reload that algorithm's defaults.
func ApplyEnv(c *experiment.Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("applyEnv: %w: %v", experiment.ErrConfiguration,
				err)
		}
	} else if err := godotenv.Load(); err != nil {
		klog.V(2).InfoS("No .env file loaded", "error", err)
	}

	if v, ok := lookup(AlgorithmEnv); ok {
		c.Algorithm = agent.Type(v)
	}
	if v, ok := lookup(WallHitEnv); ok {
		c.WallHit = v
	}
	if v, ok := lookup(ResetStrategyEnv); ok {
		c.ResetStrategy = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{LearningRateEnv, &c.LearningRate},
		{DiscountFactorEnv, &c.DiscountFactor},
		{ExplorationEnv, &c.InitialExplorationRate},
		{ExplorationMinEnv, &c.ExplorationFloor},
		{GoalRewardEnv, &c.Rewards.Goal},
		{StepRewardEnv, &c.Rewards.Step},
		{GiftRewardEnv, &c.Rewards.Gift},
	}
	for _, f := range floats {
		v, ok := lookup(f.name)
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(f.name, err)
		}
		*f.dst = x
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EpisodesEnv, &c.Episodes},
		{TraceEveryEnv, &c.TraceEvery},
	}
	for _, i := range ints {
		v, ok := lookup(i.name)
		if !ok {
			continue
		}
		x, err := strconv.Atoi(v)
		if err != nil {
			return envError(i.name, err)
		}
		*i.dst = x
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{AvoidLoopsEnv, &c.AvoidLoops},
		{PenalizeRevisitEnv, &c.Rewards.PenalizeRevisit},
	}
	for _, b := range bools {
		v, ok := lookup(b.name)
		if !ok {
			continue
		}
		x, err := strconv.ParseBool(v)
		if err != nil {
			return envError(b.name, err)
		}
		*b.dst = x
	}

	if v, ok := lookup(SeedEnv); ok {
		x, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError(SeedEnv, err)
		}
		c.Seed = x
	}
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(Prefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envError(name string, err error) error {
	return fmt.Errorf("applyEnv: %w: %v%v: %v", experiment.ErrConfiguration,
		Prefix, name, err)
}
