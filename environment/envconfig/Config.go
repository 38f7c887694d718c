// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gomaze"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/environment/matrixgame"
	"github.com/samuelfneumann/tabular/environment/maze"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GridWorld EnvName = "GridWorld"
	Maze      EnvName = "Maze"
	Climbing  EnvName = "Climbing"
	Penalty   EnvName = "Penalty"
)

// Environments returns the names of all configurable environments
func Environments() []EnvName {
	return []EnvName{GridWorld, Maze, Climbing, Penalty}
}

// Default parameters used when a Config leaves them unset
const (
	DefaultRows    = 5
	DefaultCols    = 5
	DefaultPenalty = -10.0

	GridStepReward = -1.0
	GridGoalReward = 0.0
)

// Config implements a specific configuration of a specific
// environment. Rows and Cols are only used by GridWorld and Maze, and
// Penalty only by the penalty game. For matrix games, EpisodeCutoff is
// the number of rounds played per episode.
type Config struct {
	Environment   EnvName
	EpisodeCutoff uint
	Discount      float64

	Rows    int
	Cols    int
	Penalty float64
}

// NewConfig returns a new environment Config with default parameters
func NewConfig(envName EnvName, episodeCutoff uint, discount float64) Config {
	return Config{
		Environment:   envName,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}
}

// Multi returns whether the Config describes a multi-agent environment
func (c Config) Multi() bool {
	return c.Environment == Climbing || c.Environment == Penalty
}

// Validate returns an error if the Config cannot create an environment
func (c Config) Validate() error {
	switch c.Environment {
	case GridWorld, Maze, Climbing, Penalty:
	default:
		return errors.Errorf("validate: no such environment %q", c.Environment)
	}

	if c.EpisodeCutoff == 0 {
		return errors.Errorf("validate: episode cutoff must be positive")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return errors.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	return nil
}

// Create returns the single-agent environment described by the Config
// as well as the first timestep of the environment.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case GridWorld:
		return CreateGridWorld(c.Rows, c.Cols, int(c.EpisodeCutoff), seed,
			c.Discount)

	case Maze:
		return CreateMaze(c.Rows, c.Cols, int(c.EpisodeCutoff), seed,
			c.Discount)
	}

	return nil, ts.TimeStep{}, errors.Errorf("create: cannot create "+
		"single-agent environment %v", c.Environment)
}

// CreateMulti returns the multi-agent environment described by the
// Config
func (c Config) CreateMulti() (env.MultiEnvironment, error) {
	switch c.Environment {
	case Climbing:
		return matrixgame.NewCommonPayoff(matrixgame.Climbing(),
			int(c.EpisodeCutoff))

	case Penalty:
		k := c.Penalty
		if k == 0 {
			k = DefaultPenalty
		}
		return matrixgame.NewCommonPayoff(matrixgame.Penalty(k),
			int(c.EpisodeCutoff))
	}

	return nil, errors.Errorf("createMulti: cannot create multi-agent "+
		"environment %v", c.Environment)
}

// CreateGridWorld is a factory for creating a GridWorld with a single
// goal in the bottom right corner. Episodes start uniformly at random
// in any non-goal cell. Zero rows or columns use the defaults.
func CreateGridWorld(rows, cols, cutoff int, seed uint64,
	discount float64) (env.Environment, ts.TimeStep, error) {
	if rows == 0 {
		rows = DefaultRows
	}
	if cols == 0 {
		cols = DefaultCols
	}

	goalX, goalY := cols-1, rows-1
	goal := gridworld.CToInd(goalX, goalY, cols)

	starts := make([]int, 0, rows*cols-1)
	for i := 0; i < rows*cols; i++ {
		if i != goal {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		return nil, ts.TimeStep{}, errors.Errorf("createGridWorld: %dx%d grid "+
			"has no non-goal cells", rows, cols)
	}

	s, err := env.NewCategoricalStarter(starts, seed)
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "createGridWorld")
	}

	task, err := gridworld.NewGoal(s, []int{goalX}, []int{goalY}, rows, cols,
		GridStepReward, GridGoalReward, cutoff)
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "createGridWorld")
	}

	g, step, err := gridworld.New(rows, cols, task, discount)
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "createGridWorld")
	}
	return g, step, nil
}

// CreateMaze is a factory for creating a Maze whose walls are carved by
// randomized depth-first search seeded with seed. Episodes start in the
// top left cell and end in the bottom right cell. Zero rows or columns
// use the defaults.
func CreateMaze(rows, cols, cutoff int, seed uint64,
	discount float64) (env.Environment, ts.TimeStep, error) {
	if rows == 0 {
		rows = DefaultRows
	}
	if cols == 0 {
		cols = DefaultCols
	}

	task := maze.NewSolve(nil, cutoff)
	m, step, err := maze.New(task, rows, cols,
		gomaze.NewBacktracking(int64(seed)), discount)
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "createMaze")
	}
	return m, step, nil
}
