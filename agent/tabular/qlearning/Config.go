package qlearning

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/schedule"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.QLearningTabular, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Epsilon      []float64
	LearningRate []float64
	Discount     []float64
	Schedule     []schedule.Linear

	DiscountSchedule []schedule.Anneal
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(ɛ, learningRate, discount []float64,
	schedules []schedule.Linear,
	discountSchedules []schedule.Anneal) agent.TypedConfigList {
	config := ConfigList{
		Epsilon:          ɛ,
		LearningRate:     learningRate,
		Discount:         discount,
		Schedule:         schedules,
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
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.Epsilon) * len(c.LearningRate) * len(c.Discount) *
		len(c.Schedule) * len(c.DiscountSchedule)
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 // Initial epsilon for the behaviour policy
	LearningRate float64
	Discount     float64

	// Schedule of epsilon over training. The zero value uses
	// schedule.SingleAgent().
	Schedule schedule.Linear

	// Annealing of the discount between episodes. The zero value
	// keeps the discount constant.
	DiscountSchedule schedule.Anneal
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	actions, err := environment.FlatDim(env.ActionSpec())
	if err != nil {
		return nil, errors.Wrap(err, "createAgent")
	}

	a, err := New(actions, c, seed)
	if err != nil {
		return nil, errors.Wrap(err, "createAgent")
	}
	return a, nil
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
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
	if c.Schedule != (schedule.Linear{}) {
		if err := c.Schedule.Validate(); err != nil {
			return errors.Wrap(err, "validate: epsilon schedule")
		}
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
	return agent.QLearningTabular
}

// epsilonSchedule returns the epsilon schedule described by the Config
func (c Config) epsilonSchedule() schedule.Scheduler {
	if c.Schedule == (schedule.Linear{}) {
		return schedule.SingleAgent()
	}
	return c.Schedule
}
