// Package experiment implements functionality for running training
// sessions of tabular agents on gridworlds
package experiment

import (
	"context"
	"fmt"

	"github.com/gridlearn/gridlearn/experiment/trackers"
	ts "github.com/gridlearn/gridlearn/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each TimeStep to Trackers, which cache data in RAM
// to be later saved to disk by Save(). Run() runs all episodes until
// the configured number of episodes is reached or its context is
// cancelled, and RunEpisode() runs a single episode.
type Experiment interface {
	Run(ctx context.Context) (Report, error)
	RunEpisode() (Outcome, error)

	// Adds a new Tracker to the (possibly already running) experiment.
	// Useful if you want to track data only after a specified event.
	Register(t trackers.Tracker)

	// Save all tracked data to disk
	Save() error
}

// Outcome is the terminal state of a single episode
type Outcome int

const (
	Running Outcome = iota
	Succeeded
	TruncatedByStepLimit
	TruncatedByCycle
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case TruncatedByStepLimit:
		return "TruncatedByStepLimit"
	case TruncatedByCycle:
		return "TruncatedByCycle"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// outcomeOf returns the Outcome of the episode ended by t
func outcomeOf(t ts.TimeStep) Outcome {
	if !t.Last() {
		return Running
	}
	switch t.EndType {
	case ts.TerminalStateReached:
		return Succeeded
	case ts.CycleDetected:
		return TruncatedByCycle
	}
	return TruncatedByStepLimit
}
