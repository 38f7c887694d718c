package agent

import (
	"reflect"

	"github.com/samuelfneumann/tabular/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent that the Config describes
	Type() Type
}

// SingleConfig is a Config that creates a single Agent
type SingleConfig interface {
	Config

	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)
}

// MultiConfig is a Config that creates a MultiAgent
type MultiConfig interface {
	Config

	// CreateAgents creates the agents that the config describes
	CreateAgents(env environment.MultiEnvironment,
		seed uint64) (MultiAgent, error)
}

// ConfigList stores a number of Configs compactly. Each field of a
// ConfigList is a slice holding the candidate values of the Config
// field with the same name. The Configs stored are every combination
// of field values.
type ConfigList interface {
	// Config returns an empty Config of the type stored by the list
	Config() Config

	// Type returns the type of agent described by the stored Configs
	Type() Type

	// NumFields returns the number of settable fields
	NumFields() int

	// Len returns the number of Configs stored
	Len() int
}

// ConfigAt returns the Config at index i of the ConfigList. Indices
// wrap around in both directions, so that index i and i + c.Len()
// refer to the same Config and -1 refers to the last Config. The first
// field of the list varies fastest.
func ConfigAt(i int, c ConfigList) Config {
	length := c.Len()
	if length == 0 {
		panic("configAt: empty config list")
	}
	i = ((i % length) + length) % length

	list := reflect.ValueOf(c)
	config := reflect.New(reflect.TypeOf(c.Config())).Elem()

	for field := 0; field < list.NumField(); field++ {
		values := list.Field(field)
		name := list.Type().Field(field).Name

		index := i % values.Len()
		i /= values.Len()

		config.FieldByName(name).Set(values.Index(index))
	}

	return config.Interface().(Config)
}
