package jal

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/schedule"
)

func init() {
	agent.Register(agent.JointActionLearning, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Epsilon      []float64
	LearningRate []float64
	Discount     []float64
	Decay        []float64

	DiscountSchedule []schedule.Anneal
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
func NewConfigList(ɛ, learningRate, discount, decay []float64,
	discountSchedules []schedule.Anneal) agent.TypedConfigList {
	config := ConfigList{
		Epsilon:          ɛ,
		LearningRate:     learningRate,
		Discount:         discount,
		Decay:            decay,
		DiscountSchedule: discountSchedules,
	}
	return agent.NewTypedConfigList(config)
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	return reflect.ValueOf(c).NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.Epsilon) * len(c.LearningRate) * len(c.Discount) *
		len(c.Decay) * len(c.DiscountSchedule)
}

// Config represents a configuration for joint action learners
type Config struct {
	Epsilon      float64 // Initial epsilon of each agent
	LearningRate float64
	Discount     float64

	// Fraction of training over which epsilon decays. Zero uses
	// schedule.DefaultMultiAgentDecay.
	Decay float64

	// Annealing of the discount between episodes. The zero value
	// keeps the discount constant.
	DiscountSchedule schedule.Anneal
}

// CreateAgents creates joint action learners for the two agents in env
func (c Config) CreateAgents(env environment.MultiEnvironment,
	seed uint64) (agent.MultiAgent, error) {
	actions, err := environment.FlatDims(env.ActionSpecs())
	if err != nil {
		return nil, errors.Wrap(err, "createAgents")
	}

	a, err := New(actions, c, seed)
	if err != nil {
		return nil, errors.Wrap(err, "createAgents")
	}
	return a, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return errors.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return errors.Errorf("validate: learning rate must be in (0, 1], "+
			"got %v", c.LearningRate)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return errors.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Decay < 0 {
		return errors.Errorf("validate: decay cannot be negative, got %v",
			c.Decay)
	}
	if c.DiscountSchedule != (schedule.Anneal{}) {
		if err := c.DiscountSchedule.Validate(); err != nil {
			return errors.Wrap(err, "validate: discount schedule")
		}
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.JointActionLearning
}

// epsilonSchedule returns the epsilon schedule described by the Config
func (c Config) epsilonSchedule() schedule.Linear {
	if c.Decay == 0 {
		return schedule.MultiAgent(schedule.DefaultMultiAgentDecay)
	}
	return schedule.MultiAgent(c.Decay)
}
