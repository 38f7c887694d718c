// Package montecarlo implements first-visit Monte-Carlo control with
// an ε-greedy behaviour policy.
//
// Action values are the average of all first-visit returns observed
// for a state-action pair over the agent's lifetime. Visit counts are
// incremented at every occurrence of a pair, so a pair visited twice
// in one episode contributes a single return but two counts.
package montecarlo

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular/policy"
	"github.com/samuelfneumann/tabular/schedule"
	"github.com/samuelfneumann/tabular/table"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// MonteCarlo implements first-visit Monte-Carlo control
type MonteCarlo struct {
	*policy.EGreedy
	values *table.ValueTable[table.StateAction]
	counts *table.Counter[table.StateAction]

	discount float64

	epsilonSchedule  schedule.Scheduler
	discountSchedule schedule.Scheduler
}

// New creates a new MonteCarlo agent with the given number of actions
func New(actions int, c Config, seed uint64) (*MonteCarlo, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new")
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, actions, seed)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	var epsilonSchedule schedule.Scheduler = c.Schedule
	if c.Schedule == (schedule.Linear{}) {
		epsilonSchedule = schedule.SingleAgent()
	}

	return &MonteCarlo{
		EGreedy:          behaviour,
		values:           behaviour.Values(),
		counts:           table.NewCounter[table.StateAction](),
		discount:         c.Discount,
		epsilonSchedule:  epsilonSchedule,
		discountSchedule: schedule.Discount(c.DiscountSchedule),
	}, nil
}

// LearnEpisode updates action values from a complete episode and
// returns the first-visit return of each updated state-action pair.
//
// If the episode's slices differ in length or contain an invalid
// action, an error is returned and no values or counts are changed.
func (m *MonteCarlo) LearnEpisode(e ts.Episode) (map[table.StateAction]float64,
	error) {
	if err := agent.CheckLengths(len(e.Observations), len(e.Actions),
		len(e.Rewards)); err != nil {
		return nil, errors.Wrap(err, "learnEpisode")
	}

	// Index of the first occurrence of each pair
	first := make(map[table.StateAction]int, e.Len())
	for t := range e.Actions {
		if err := agent.CheckAction(e.Actions[t], m.NumActions()); err != nil {
			return nil, errors.Wrapf(err, "learnEpisode: step %d", t)
		}

		pair := table.StateAction{State: e.Observations[t], Action: e.Actions[t]}
		if _, ok := first[pair]; !ok {
			first[pair] = t
		}
	}

	returns := make(map[table.StateAction]float64, len(first))
	g := 0.0
	for t := e.Len() - 1; t >= 0; t-- {
		g = e.Rewards[t] + m.discount*g

		pair := table.StateAction{State: e.Observations[t], Action: e.Actions[t]}
		count := float64(m.counts.Inc(pair))

		if first[pair] == t {
			value := (m.values.Get(pair)*(count-1) + g) / count
			m.values.Set(pair, value)
			returns[pair] = g

			glog.V(2).Infof("montecarlo: Q(%d, %d) <- %.4f (return %.4f, "+
				"count %v)", pair.State, pair.Action, value, g, count)
		}
	}

	return returns, nil
}

// Count returns the number of times the state-action pair has been
// visited over the agent's lifetime
func (m *MonteCarlo) Count(pair table.StateAction) int {
	return m.counts.Count(pair)
}

// ScheduleHyperparameters sets epsilon and the discount factor for the
// next episode given that t of T timesteps have been completed
func (m *MonteCarlo) ScheduleHyperparameters(t, T int) {
	m.SetEpsilon(m.epsilonSchedule.Value(m.Epsilon(), t, T))
	m.discount = m.discountSchedule.Value(m.discount, t, T)
}

// Discount returns the current discount factor
func (m *MonteCarlo) Discount() float64 {
	return m.discount
}
