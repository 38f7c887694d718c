// Package jal implements joint action learning with opponent models
// for two-agent stateless repeated games.
//
// Each agent learns the value of joint actions and models its opponent
// by the empirical frequency of the opponent's actions. Agents act to
// maximize the expected value of their own actions under the opponent
// model.
package jal

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

// Agents is the number of agents supported by JAL
const Agents = 2

// JAL implements a pair of joint action learners
type JAL struct {
	values  [Agents]*table.ValueTable[table.JointAction]
	models  [Agents]*table.Counter[int]
	actions [Agents]int

	epsilon      float64
	learningRate float64
	discount     float64

	epsilonSchedule  schedule.Scheduler
	discountSchedule schedule.Scheduler

	rng  *rand.Rand
	eval bool
}

// New creates two joint action learners, where actions holds the
// number of actions available to each agent
func New(actions []int, c Config, seed uint64) (*JAL, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}
	if len(actions) != Agents {
		return nil, errors.Errorf("new: joint action learning requires "+
			"exactly %d agents, got %d", Agents, len(actions))
	}

	j := &JAL{
		epsilon:          c.Epsilon,
		learningRate:     c.LearningRate,
		discount:         c.Discount,
		epsilonSchedule:  c.epsilonSchedule(),
		discountSchedule: schedule.Discount(c.DiscountSchedule),
		rng:              rand.New(rand.NewSource(seed)),
	}
	for i, n := range actions {
		if n <= 0 {
			return nil, errors.Errorf("new: agent %d has %d actions", i, n)
		}
		j.actions[i] = n
		j.values[i] = table.NewValueTable[table.JointAction]()
		j.models[i] = table.NewCounter[int]()
	}

	return j, nil
}

// NumAgents returns the number of agents
func (j *JAL) NumAgents() int {
	return Agents
}

// Values returns the joint action values of agent i
func (j *JAL) Values(i int) *table.ValueTable[table.JointAction] {
	return j.values[i]
}

// Model returns the opponent action counts of agent i
func (j *JAL) Model(i int) *table.Counter[int] {
	return j.models[i]
}

// joint returns the joint action in which agent i takes action own
// and its opponent takes action opponent
func joint(i, own, opponent int) table.JointAction {
	var a table.JointAction
	a[i] = own
	a[1-i] = opponent
	return a
}

// ExpectedValues returns the expected value of each action of agent i
// under its opponent model
func (j *JAL) ExpectedValues(i int) []float64 {
	opponent := 1 - i
	model := j.models[i]

	total := float64(model.Total())
	if total < 1 {
		total = 1
	}

	ev := make([]float64, j.actions[i])
	for a := range ev {
		for o := 0; o < j.actions[opponent]; o++ {
			p := float64(model.Count(o)) / total
			ev[a] += p * j.values[i].Get(joint(i, a, o))
		}
	}
	return ev
}

// Act returns an ε-greedy action for each agent with respect to the
// expected value of its actions
func (j *JAL) Act() []int {
	actions := make([]int, Agents)
	for i := range actions {
		if !j.eval && j.rng.Float64() < j.epsilon {
			actions[i] = j.rng.Intn(j.actions[i])
		} else {
			actions[i] = floatutils.ArgMax(j.ExpectedValues(i), j.rng)
		}
	}
	return actions
}

// Learn updates each agent's opponent model with the observed opponent
// action, then updates the value of the joint action taken. The
// updated value of each agent is returned.
func (j *JAL) Learn(actions []int, rewards []float64,
	dones []bool) ([]float64, error) {
	if err := agent.CheckLengths(Agents, len(actions), len(rewards),
		len(dones)); err != nil {
		return nil, errors.Wrap(err, "learn")
	}
	for i, a := range actions {
		if err := agent.CheckAction(a, j.actions[i]); err != nil {
			return nil, errors.Wrapf(err, "learn: agent %d", i)
		}
	}

	key := table.JointAction{actions[0], actions[1]}
	updated := make([]float64, Agents)
	for i := range updated {
		j.models[i].Inc(actions[1-i])

		target := rewards[i]
		if !dones[i] {
			target += j.discount * floats.Max(j.ExpectedValues(i))
		}

		value := j.values[i].Get(key)
		value += j.learningRate * (target - value)
		j.values[i].Set(key, value)
		updated[i] = value
	}

	glog.V(2).Infof("jal: actions %v values %v", actions, updated)
	return updated, nil
}

// ScheduleHyperparameters sets epsilon and the discount factor for the
// next episode given that t of T timesteps have been completed
func (j *JAL) ScheduleHyperparameters(t, T int) {
	j.epsilon = floatutils.Clip(j.epsilonSchedule.Value(j.epsilon, t, T), 0, 1)
	j.discount = j.discountSchedule.Value(j.discount, t, T)
}

// Epsilon returns the current exploration probability
func (j *JAL) Epsilon() float64 {
	return j.epsilon
}

// Eval sets the agents to evaluation mode
func (j *JAL) Eval() { j.eval = true }

// Train sets the agents to training mode
func (j *JAL) Train() { j.eval = false }

// IsEval returns whether the agents are in evaluation mode
func (j *JAL) IsEval() bool { return j.eval }
