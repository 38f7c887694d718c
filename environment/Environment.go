// Package environment outlines the interfaces and structs needed to
// implement concrete environments with discrete observations and
// actions
package environment

import (
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() int
}

// Ender determines when episodes should be ended. If an episode should
// be ended, End() modifies the TimeStep so that its StepType is
// timestep.Last and records why the episode ended.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState int) float64
	AtGoal(state int) bool
}

// Environment implements a simulated environment with a single agent
type Environment interface {
	Reset() (ts.TimeStep, error)

	// Step takes action in the environment, returning the next
	// TimeStep and whether the episode has ended
	Step(action int) (ts.TimeStep, bool, error)

	CurrentTimeStep() ts.TimeStep
	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}

// MultiEnvironment implements a stateless, repeated game played by a
// number of agents simultaneously. Agents receive no observations,
// only rewards.
type MultiEnvironment interface {
	NumAgents() int
	ActionSpecs() []Spec
	Reset() error

	// Step takes a joint action, one action per agent, and returns the
	// reward and episode termination flag of each agent
	Step(actions []int) (rewards []float64, dones []bool, err error)
}
