// Package agent defines the interfaces satisfied by tabular and
// multi-agent learners, along with the configuration registry used to
// construct them.
package agent

import (
	"github.com/samuelfneumann/tabular/table"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Scheduler is an agent whose hyperparameters change over training.
//
// ScheduleHyperparameters is called once before every episode, where t
// is the number of timesteps completed so far and T is the maximum
// number of timesteps that training will run for. Hyperparameters are
// held constant for the rest of the episode.
type Scheduler interface {
	ScheduleHyperparameters(t, T int)
}

// Moder is implemented by agents that can switch between training and
// evaluation mode. In evaluation mode agents act greedily.
type Moder interface {
	Eval()        // Set agent to evaluation mode
	Train()       // Set agent to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// Policy chooses actions given discrete observations
type Policy interface {
	SelectAction(obs int) int
	Moder
}

// Agent is a single agent acting in an environment with discrete
// observations and actions.
//
// Concrete agents also implement either TDLearner or EpisodeLearner,
// which determines how the training loop feeds them experience.
type Agent interface {
	Policy
	Scheduler
}

// TDLearner is an Agent which learns online from single transitions
type TDLearner interface {
	Agent

	// Learn updates the value of the transition's state-action pair
	// and returns the updated value
	Learn(t ts.Transition) (float64, error)
}

// EpisodeLearner is an Agent which learns from complete episodes
type EpisodeLearner interface {
	Agent

	// LearnEpisode updates values from a full trajectory and returns
	// the updated state-action pairs along with the returns used to
	// update them
	LearnEpisode(e ts.Episode) (map[table.StateAction]float64, error)
}

// MultiAgent is a set of agents learning simultaneously in a stateless
// repeated game
type MultiAgent interface {
	Scheduler
	Moder

	// NumAgents returns the number of agents
	NumAgents() int

	// Act returns the action of each agent
	Act() []int

	// Learn updates each agent given the joint action taken and the
	// reward and episode termination flag of each agent, returning the
	// updated value of each agent
	Learn(actions []int, rewards []float64, dones []bool) ([]float64, error)
}
