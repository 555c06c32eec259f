package experiment

import (
	"time"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/replay"
)

// Success records an episode that reached the goal
type Success struct {
	Episode int // 1-based episode index
	Steps   int
}

// Report summarizes the episodes run by a Session so far
type Report struct {
	RunID     string
	Algorithm agent.Type
	Episodes  int
	Outcomes  []Outcome
	Successes []Success

	// Epsilon is the exploration rate the next episode will use
	Epsilon float64
	Elapsed time.Duration

	MeanEpisodeLength float64
	MeanReturn        float64

	// Replay is the greedy replay run after training completed. It is
	// nil if training did not complete.
	Replay *replay.Result
}

// Count returns how many episodes ended with outcome o
func (r Report) Count(o Outcome) int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome == o {
			n++
		}
	}
	return n
}
