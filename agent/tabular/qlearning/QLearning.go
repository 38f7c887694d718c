// Package qlearning implements the tabular Q-Learning algorithm.
//
// The behaviour policy is ε-greedy with respect to the learned action
// values and the target policy is greedy.
package qlearning

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	"github.com/samuelfneumann/tabular/schedule"
	"github.com/samuelfneumann/tabular/table"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*policy.EGreedy
	values *table.ValueTable[table.StateAction]

	learningRate float64
	discount     float64

	epsilonSchedule  schedule.Scheduler
	discountSchedule schedule.Scheduler
}

// New creates a new QLearning agent with the given number of actions
func New(actions int, c Config, seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, actions, seed)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	return &QLearning{
		EGreedy:          behaviour,
		values:           behaviour.Values(),
		learningRate:     c.LearningRate,
		discount:         c.Discount,
		epsilonSchedule:  c.epsilonSchedule(),
		discountSchedule: schedule.Discount(c.DiscountSchedule),
	}, nil
}

// Learn performs a Q-Learning update on the transition and returns
// the updated action value
func (q *QLearning) Learn(t ts.Transition) (float64, error) {
	if err := agent.CheckAction(t.Action, q.NumActions()); err != nil {
		return 0, errors.Wrap(err, "learn")
	}

	target := t.Reward
	if !t.Done {
		target += q.discount * q.MaxValue(t.NextState)
	}

	key := table.StateAction{State: t.State, Action: t.Action}
	value := q.values.Get(key)
	value += q.learningRate * (target - value)
	q.values.Set(key, value)

	glog.V(2).Infof("qlearning: Q(%d, %d) <- %.4f (target %.4f)", t.State,
		t.Action, value, target)
	return value, nil
}

// ScheduleHyperparameters sets epsilon and the discount factor for the
// next episode given that t of T timesteps have been completed
func (q *QLearning) ScheduleHyperparameters(t, T int) {
	q.SetEpsilon(q.epsilonSchedule.Value(q.Epsilon(), t, T))
	q.discount = q.discountSchedule.Value(q.discount, t, T)
}

// Discount returns the current discount factor
func (q *QLearning) Discount() float64 {
	return q.discount
}

// LearningRate returns the step size of updates
func (q *QLearning) LearningRate() float64 {
	return q.learningRate
}
