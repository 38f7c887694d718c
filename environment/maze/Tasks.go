package maze

import (
	"github.com/samuelfneumann/gomaze"
	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Rewards of the Solve task
const (
	TimeStepReward float64 = -1.0
	TerminalReward float64 = 0
)

// Solve is the task of reaching the goal cell of a maze. Episodes end
// when the goal is reached or after a cutoff number of steps.
type Solve struct {
	starter env.Starter
	start   int
	goal    int

	enders []env.Ender
}

// NewSolve returns a new Solve task which cuts episodes off after
// cutoff steps. Starting cells are sampled from s. If s is nil, every
// episode starts in the maze's own starting cell.
func NewSolve(s env.Starter, cutoff int) *Solve {
	task := &Solve{starter: s, goal: -1}

	goal := env.NewFunctionEnder(task.AtGoal, ts.TerminalStateReached)
	task.enders = []env.Ender{goal, env.NewStepLimit(cutoff)}

	return task
}

// Register records the start and goal cells of m
func (s *Solve) Register(m *gomaze.Maze) {
	row, col := m.Start()
	s.start = row*m.Cols() + col

	row, col = m.Goal()
	s.goal = row*m.Cols() + col
}

// Start returns a starting state
func (s *Solve) Start() int {
	if s.starter == nil {
		return s.start
	}
	return s.starter.Start()
}

// End determines whether the episode should end. Reaching the goal
// takes precedence over the cutoff.
func (s *Solve) End(t *ts.TimeStep) bool {
	for _, ender := range s.enders {
		if ender.End(t) {
			return true
		}
	}
	return false
}

// GetReward returns the reward for transitioning into nextState
func (s *Solve) GetReward(_, _, nextState int) float64 {
	if s.AtGoal(nextState) {
		return TerminalReward
	}
	return TimeStepReward
}

// AtGoal returns whether state is the goal cell
func (s *Solve) AtGoal(state int) bool {
	return state == s.goal
}

// Goal returns the goal state
func (s *Solve) Goal() int {
	return s.goal
}
