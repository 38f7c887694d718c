package gridworld

import (
	"github.com/pkg/errors"
	env "github.com/samuelfneumann/tabular/environment"
	"gonum.org/v1/gonum/floats"
)

// Goal represents the task of reaching goal states in a GridWorld
type Goal struct {
	env.Starter
	env.Ender
	goals          map[int]bool
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new goal task with goal cells at
// positions (x[i], y[i]) in a gridworld with r rows and c columns.
// Each step yields timeStepReward unless it enters a goal, which
// yields goalReward. Episodes are cut off after cutoff steps.
func NewGoal(s env.Starter, x, y []int, r, c int, timeStepReward,
	goalReward float64, cutoff int) (*Goal, error) {
	if len(x) != len(y) {
		return nil, errors.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}

	goals := make(map[int]bool, len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, errors.Errorf("newGoal: x[%d] = %d out of bounds for "+
				"%d cols", i, x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, errors.Errorf("newGoal: y[%d] = %d out of bounds for "+
				"%d rows", i, y[i], r)
		}
		goals[cToInd(x[i], y[i], c)] = true
	}

	return &Goal{
		Starter:        s,
		Ender:          env.NewStepLimit(cutoff),
		goals:          goals,
		timeStepReward: timeStepReward,
		goalReward:     goalReward,
	}, nil
}

// GetReward returns the reward for transitioning into nextState
func (g *Goal) GetReward(_, _, nextState int) float64 {
	if g.goals[nextState] {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is a goal state
func (g *Goal) AtGoal(state int) bool {
	return g.goals[state]
}

// Min returns the minimum possible reward
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum possible reward
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}
