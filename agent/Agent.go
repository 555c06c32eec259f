// Package agent defines an agent interface
package agent

import (
	"github.com/gridlearn/gridlearn/environment"
	"github.com/gridlearn/gridlearn/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns values, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the values
// the Policy reads.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how values are
// updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action environment.Action, nextStep timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner share the same value table so that any changes
// the learner makes are reflected in the actions the Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) environment.Action
}

// EGreedyPolicy is a Policy whose exploration rate can be adjusted
type EGreedyPolicy interface {
	Policy
	SetEpsilon(float64)
	Epsilon() float64
}

// Explorer is an Agent acting with an ε-greedy behaviour policy
type Explorer interface {
	Agent
	EGreedyPolicy
}
