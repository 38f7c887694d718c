package environment

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled uniformly from a
// fixed set of candidate states
type CategoricalStarter struct {
	states []int
	seed   uint64
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter sampling
// uniformly from states
func NewCategoricalStarter(states []int, seed uint64) (*CategoricalStarter,
	error) {
	if len(states) == 0 {
		return nil, errors.Errorf("newCategoricalStarter: at least one " +
			"starting state is required")
	}
	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return &CategoricalStarter{
		states: append([]int(nil), states...),
		seed:   seed,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() int {
	return c.states[int(c.rand.Rand())]
}

// SingleStart always starts episodes in the same state
type SingleStart struct {
	state int
}

// NewSingleStart returns a new SingleStart starting in state
func NewSingleStart(state int) SingleStart {
	return SingleStart{state}
}

// Start returns the starting state
func (s SingleStart) Start() int {
	return s.state
}
