// Package gridworld implements 2D gridworld environments with discrete
// observations. Each cell (x, y) of a gridworld with c columns is
// observed as the index y*c + x.
package gridworld

import (
	"github.com/pkg/errors"
	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down

	Actions int = 4
)

// GridWorld represents a gridworld environment
//
// A gridworld is represented as a flattened matrix, but in this implementation
// only the matrix dimensions and current agent position are tracked
type GridWorld struct {
	env.Task
	r, c        int
	position    int // current position
	discount    float64
	currentStep ts.TimeStep
}

// New creates a new gridworld with r rows and c columns, task t, and
// discount factor d. The starting position is sampled from the task.
func New(r, c int, t env.Task, d float64) (*GridWorld, ts.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, ts.TimeStep{}, errors.Errorf("new: gridworld must have "+
			"positive dimensions, got (%d, %d)", r, c)
	}
	g := &GridWorld{Task: t, r: r, c: c, discount: d}

	step, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, errors.Wrap(err, "new")
	}
	return g, step, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Reset resets the environment to some starting state
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	start := g.Start()
	if start < 0 || start >= g.r*g.c {
		return ts.TimeStep{}, errors.Errorf("reset: start state %d out of "+
			"bounds for %dx%d gridworld", start, g.r, g.c)
	}
	g.position = start

	startStep := ts.New(ts.First, 0, g.discount, g.position, 0)
	g.currentStep = startStep
	return startStep, nil
}

// Step takes one environmental step given some action
func (g *GridWorld) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= Actions {
		return ts.TimeStep{}, false, errors.Errorf("step: illegal action %d",
			action)
	}

	state := g.position
	g.position = move(state, action, g.r, g.c)

	// Get information to pass back
	reward := g.GetReward(state, action, g.position)
	number := g.currentStep.Number + 1
	step := ts.New(ts.Mid, reward, g.discount, g.position, number)

	// Check if this transition is to the end state
	if g.AtGoal(g.position) {
		step.StepType = ts.Last
		step.SetEnd(ts.TerminalStateReached)
	} else {
		g.End(&step)
	}

	g.currentStep = step
	return step, step.Last(), nil
}

// CurrentTimeStep returns the last TimeStep that occurred in the
// environment
func (g *GridWorld) CurrentTimeStep() ts.TimeStep {
	return g.currentStep
}

// Coordinates returns the current (x, y) coordinates of the agent
func (g *GridWorld) Coordinates() (int, int) {
	return indToC(g.position, g.c)
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	return env.NewDiscreteSpec(env.Observation, g.r*g.c)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, Actions)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{g.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// move returns the state reached by taking action in state. Moving into
// a wall leaves the agent in place.
func move(state, action, r, c int) int {
	x, y := indToC(state, c)

	switch action {
	case Left:
		if x-1 >= 0 {
			x--
		}
	case Right:
		if x+1 < c {
			x++
		}
	case Up:
		if y+1 < r {
			y++
		}
	case Down:
		if y-1 >= 0 {
			y--
		}
	}
	return cToInd(x, y, c)
}

// CToInd converts coordinates (x, y) to a state index in a gridworld
// with c columns
func CToInd(x, y, c int) int {
	return cToInd(x, y, c)
}

func cToInd(x, y, c int) int {
	return y*c + x
}

func indToC(i, c int) (int, int) {
	return i % c, i / c
}
