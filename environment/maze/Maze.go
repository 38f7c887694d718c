// Package maze implements maze environments using GoMaze.
//
// Mazes are perfect: every cell is reachable from every other cell
// along exactly one path. Each cell (row, col) of a maze with c
// columns is observed as the index row*c + col.
package maze

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gomaze"
	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Actions available in a Maze. Moving into a wall leaves the agent in
// place.
const (
	North int = iota
	South
	West
	East

	Actions int = gomaze.Actions
)

// Negative coordinates tell GoMaze to use the top left cell as the
// start and the bottom right cell as the goal
const (
	DefaultStartRow int = -1
	DefaultStartCol int = -1
	DefaultEndRow   int = -1
	DefaultEndCol   int = -1
)

// Maze implements a maze environment
type Maze struct {
	env.Task
	maze       *gomaze.Maze
	rows, cols int

	discount    float64
	currentStep ts.TimeStep
}

// New creates a new maze with the given number of rows and columns
// whose walls are carved by init. If t is a *Solve task, the maze is
// registered with the task so that the task can find the maze's start
// and goal cells.
func New(t env.Task, rows, cols int, init gomaze.Initer,
	discount float64) (*Maze, ts.TimeStep, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ts.TimeStep{}, errors.Errorf("new: maze must have "+
			"positive dimensions, got (%d, %d)", rows, cols)
	}

	maze, err := gomaze.NewMaze(rows, cols, DefaultEndRow, DefaultEndCol,
		DefaultStartRow, DefaultStartCol, init, false)
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "new: could not "+
			"create maze")
	}

	if task, ok := t.(*Solve); ok {
		task.Register(maze)
	}

	m := &Maze{
		Task:     t,
		maze:     maze,
		rows:     rows,
		cols:     cols,
		discount: discount,
	}

	step, err := m.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "new")
	}
	return m, step, nil
}

// Dims returns the rows and columns of the maze
func (m *Maze) Dims() (r, c int) {
	return m.rows, m.cols
}

// Reset resets the environment to a starting cell sampled from the
// task
func (m *Maze) Reset() (ts.TimeStep, error) {
	start := m.Start()
	if start < 0 || start >= m.rows*m.cols {
		return ts.TimeStep{}, errors.Errorf("reset: start state %d out of "+
			"bounds for %dx%d maze", start, m.rows, m.cols)
	}

	m.maze.Reset()
	if err := m.maze.SetCell(start%m.cols, start/m.cols); err != nil {
		return ts.TimeStep{}, errors.Wrap(err, "reset")
	}

	step := ts.New(ts.First, 0, m.discount, start, 0)
	m.currentStep = step
	return step, nil
}

// Step takes one environmental step given some action
func (m *Maze) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= Actions {
		return ts.TimeStep{}, false, errors.Errorf("step: illegal action %d",
			action)
	}

	state := m.currentStep.Observation
	obs, _, _, err := m.maze.Step(action)
	if err != nil {
		return ts.TimeStep{}, false, errors.Wrap(err, "step")
	}
	nextState := m.index(obs)

	reward := m.GetReward(state, action, nextState)
	step := ts.New(ts.Mid, reward, m.discount, nextState,
		m.currentStep.Number+1)
	m.End(&step)

	m.currentStep = step
	return step, step.Last(), nil
}

// CurrentTimeStep returns the last TimeStep that occurred in the
// environment
func (m *Maze) CurrentTimeStep() ts.TimeStep {
	return m.currentStep
}

// ObservationSpec returns the observation specification of the
// environment
func (m *Maze) ObservationSpec() env.Spec {
	return env.NewDiscreteSpec(env.Observation, m.rows*m.cols)
}

// ActionSpec returns the action specification of the environment
func (m *Maze) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, Actions)
}

// DiscountSpec returns the discount specification of the environment
func (m *Maze) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{m.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns the maze drawn in ASCII
func (m *Maze) String() string {
	return m.maze.String()
}

// index converts a GoMaze (col, row) observation to a state index
func (m *Maze) index(obs []float64) int {
	return int(obs[1])*m.cols + int(obs[0])
}
