package experiment

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/spf13/viper"
)

// Type is the type of an Experiment
type Type string

const (
	OnlineExp      Type = "OnlineExperiment"
	MultiOnlineExp Type = "MultiOnlineExperiment"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type
	MaxSteps  int
	EnvConf   envconfig.Config
	AgentConf agent.TypedConfigList
}

// Validate returns an error if the experiment cannot be created
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return errors.Errorf("validate: max steps must be positive, got %d",
			c.MaxSteps)
	}
	if err := c.EnvConf.Validate(); err != nil {
		return errors.Wrap(err, "validate")
	}
	if c.AgentConf.ConfigList == nil || c.AgentConf.Len() == 0 {
		return errors.Errorf("validate: no agent configurations")
	}

	switch c.Type {
	case OnlineExp:
		if c.EnvConf.Multi() {
			return errors.Errorf("validate: %v requires a single-agent "+
				"environment, got %v", c.Type, c.EnvConf.Environment)
		}
	case MultiOnlineExp:
		if !c.EnvConf.Multi() {
			return errors.Errorf("validate: %v requires a multi-agent "+
				"environment, got %v", c.Type, c.EnvConf.Environment)
		}
	default:
		return errors.Errorf("validate: no such experiment type %v", c.Type)
	}
	return nil
}

// CreateExp creates the experiment using the agent Config at index i
// of the ConfigList. The environment and agent are seeded with seed.
func (c Config) CreateExp(i int, seed uint64,
	t ...tracker.Tracker) (Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "createExp")
	}
	conf := c.AgentConf.At(i)

	switch c.Type {
	case OnlineExp:
		agentConf, ok := conf.(agent.SingleConfig)
		if !ok {
			return nil, errors.Errorf("createExp: %v is not a single agent "+
				"type", conf.Type())
		}

		env, _, err := c.EnvConf.Create(seed)
		if err != nil {
			return nil, errors.Wrap(err, "createExp")
		}
		a, err := agentConf.CreateAgent(env, seed)
		if err != nil {
			return nil, errors.Wrap(err, "createExp: could not create agent")
		}
		exp, err := NewOnline(env, a, c.MaxSteps, t...)
		if err != nil {
			return nil, errors.Wrap(err, "createExp")
		}
		return exp, nil

	case MultiOnlineExp:
		agentConf, ok := conf.(agent.MultiConfig)
		if !ok {
			return nil, errors.Errorf("createExp: %v is not a multi-agent type",
				conf.Type())
		}

		env, err := c.EnvConf.CreateMulti()
		if err != nil {
			return nil, errors.Wrap(err, "createExp")
		}
		a, err := agentConf.CreateAgents(env, seed)
		if err != nil {
			return nil, errors.Wrap(err, "createExp: could not create agents")
		}
		exp, err := NewMultiOnline(env, a, c.MaxSteps, t...)
		if err != nil {
			return nil, errors.Wrap(err, "createExp")
		}
		return exp, nil
	}

	return nil, errors.Errorf("createExp: no such experiment type %v", c.Type)
}

// LoadConfig reads an experiment Config from a JSON or YAML file. Any
// setting may be overridden by an environment variable with prefix
// TABULAR, for example TABULAR_MAXSTEPS.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("tabular")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not read %v",
			path)
	}

	// Viper does not know about agent.TypedConfigList, so settings are
	// decoded through its JSON unmarshaler
	data, err := json.Marshal(v.AllSettings())
	if err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not decode %v",
			path)
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}
	return c, nil
}
