// Package iql implements independent Q-Learning for stateless
// repeated games.
//
// Each agent learns the value of its own actions while treating all
// other agents as part of the environment. Greedy actions are the
// lowest index maximizer of each agent's action values.
package iql

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/schedule"
	"github.com/samuelfneumann/tabular/table"
	"github.com/samuelfneumann/tabular/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// IQL implements a set of independent Q-Learning agents
type IQL struct {
	values  []*table.ValueTable[int]
	actions []int

	epsilon      float64
	learningRate float64
	discount     float64

	epsilonSchedule  schedule.Scheduler
	discountSchedule schedule.Scheduler

	rng  *rand.Rand
	eval bool
}

// New creates independent learners, one for each element of actions,
// which holds the number of actions available to each agent
func New(actions []int, c Config, seed uint64) (*IQL, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}
	if len(actions) == 0 {
		return nil, errors.New("new: at least one agent is required")
	}

	values := make([]*table.ValueTable[int], len(actions))
	for i, n := range actions {
		if n <= 0 {
			return nil, errors.Errorf("new: agent %d has %d actions", i, n)
		}
		values[i] = table.NewValueTable[int]()
	}

	return &IQL{
		values:           values,
		actions:          append([]int(nil), actions...),
		epsilon:          c.Epsilon,
		learningRate:     c.LearningRate,
		discount:         c.Discount,
		epsilonSchedule:  c.epsilonSchedule(),
		discountSchedule: schedule.Discount(c.DiscountSchedule),
		rng:              rand.New(rand.NewSource(seed)),
	}, nil
}

// NumAgents returns the number of agents
func (q *IQL) NumAgents() int {
	return len(q.values)
}

// Values returns the action values of agent i
func (q *IQL) Values(i int) *table.ValueTable[int] {
	return q.values[i]
}

// actionValues returns the values of each action of agent i
func (q *IQL) actionValues(i int) []float64 {
	values := make([]float64, q.actions[i])
	for a := range values {
		values[a] = q.values[i].Get(a)
	}
	return values
}

// Act returns an ε-greedy action for each agent
func (q *IQL) Act() []int {
	actions := make([]int, q.NumAgents())
	for i := range actions {
		if !q.eval && q.rng.Float64() <= q.epsilon {
			actions[i] = q.rng.Intn(q.actions[i])
		} else {
			actions[i] = floats.MaxIdx(q.actionValues(i))
		}
	}
	return actions
}

// Learn performs a Q-Learning update for each agent keyed by its own
// action and returns the updated value of each agent
func (q *IQL) Learn(actions []int, rewards []float64,
	dones []bool) ([]float64, error) {
	if err := agent.CheckLengths(q.NumAgents(), len(actions), len(rewards),
		len(dones)); err != nil {
		return nil, errors.Wrap(err, "learn")
	}
	for i, a := range actions {
		if err := agent.CheckAction(a, q.actions[i]); err != nil {
			return nil, errors.Wrapf(err, "learn: agent %d", i)
		}
	}

	updated := make([]float64, q.NumAgents())
	for i, a := range actions {
		target := rewards[i]
		if !dones[i] {
			max, _ := floatutils.MaxSlice(q.actionValues(i))
			target += q.discount * max
		}

		value := q.values[i].Get(a)
		value += q.learningRate * (target - value)
		q.values[i].Set(a, value)
		updated[i] = value
	}

	glog.V(2).Infof("iql: actions %v values %v", actions, updated)
	return updated, nil
}

// ScheduleHyperparameters sets epsilon and the discount factor for the
// next episode given that t of T timesteps have been completed
func (q *IQL) ScheduleHyperparameters(t, T int) {
	q.epsilon = floatutils.Clip(q.epsilonSchedule.Value(q.epsilon, t, T), 0, 1)
	q.discount = q.discountSchedule.Value(q.discount, t, T)
}

// Epsilon returns the current exploration probability
func (q *IQL) Epsilon() float64 {
	return q.epsilon
}

// Eval sets the agents to evaluation mode
func (q *IQL) Eval() { q.eval = true }

// Train sets the agents to training mode
func (q *IQL) Train() { q.eval = false }

// IsEval returns whether the agents are in evaluation mode
func (q *IQL) IsEval() bool { return q.eval }
