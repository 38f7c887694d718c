// Package policy implements policies over tabular action values
package policy

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/table"
	"github.com/samuelfneumann/tabular/utils/floatutils"
	"golang.org/x/exp/rand"
)

// EGreedy implements an ε-greedy policy over a table of action values.
// With probability ε an action is selected uniformly at random,
// otherwise an action of maximal value is selected with ties broken
// uniformly at random. In evaluation mode the policy is greedy.
type EGreedy struct {
	values  *table.ValueTable[table.StateAction]
	epsilon float64
	actions int
	rng     *rand.Rand
	eval    bool

	// Buffer of action values, reused between calls
	actionValues []float64
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected and actions is
// the number of actions available in every state.
func NewEGreedy(e float64, actions int, seed uint64) (*EGreedy, error) {
	if actions <= 0 {
		return nil, errors.Errorf("newEGreedy: actions must be positive but "+
			"got %v", actions)
	}

	return &EGreedy{
		values:       table.NewValueTable[table.StateAction](),
		epsilon:      floatutils.Clip(e, 0, 1),
		actions:      actions,
		rng:          rand.New(rand.NewSource(seed)),
		actionValues: make([]float64, actions),
	}, nil
}

// Values returns the action values the policy acts with respect to.
// Changes to the returned table are reflected in the policy.
func (p *EGreedy) Values() *table.ValueTable[table.StateAction] {
	return p.values
}

// NumActions returns the number of actions in each state
func (p *EGreedy) NumActions() int {
	return p.actions
}

// SelectAction selects an action from the ε-greedy policy
func (p *EGreedy) SelectAction(obs int) int {
	if !p.eval && p.rng.Float64() < p.epsilon {
		return p.rng.Intn(p.actions)
	}
	return p.Greedy(obs)
}

// Greedy returns an action of maximal value in state obs, breaking
// ties uniformly at random
func (p *EGreedy) Greedy(obs int) int {
	return floatutils.ArgMax(p.ActionValues(obs), p.rng)
}

// MaxValue returns the maximum action value in state obs
func (p *EGreedy) MaxValue(obs int) float64 {
	max, _ := floatutils.MaxSlice(p.ActionValues(obs))
	return max
}

// ActionValues returns the values of each action in state obs. The
// returned slice is only valid until the next call on the policy.
func (p *EGreedy) ActionValues(obs int) []float64 {
	for a := range p.actionValues {
		p.actionValues[a] = p.values.Get(table.StateAction{
			State:  obs,
			Action: a,
		})
	}
	return p.actionValues
}

// Epsilon returns the exploration probability
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration probability, clipped to [0, 1]
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = floatutils.Clip(e, 0, 1)
}

// Eval sets the policy to evaluation mode
func (p *EGreedy) Eval() { p.eval = true }

// Train sets the policy to training mode
func (p *EGreedy) Train() { p.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool { return p.eval }
