package environment

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, a discount, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteSpec returns a 1-dimensional discrete Spec over the
// values (0, 1, ..., n-1)
func NewDiscreteSpec(t SpecType, n int) Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(n - 1)})

	return NewSpec(shape, t, lowerBound, upperBound, Discrete)
}

// FlatDim returns the number of distinct values described by a
// discrete Spec, that is the product over dimensions of the number of
// integers between the lower and upper bound inclusive. An error is
// returned for continuous Specs.
func FlatDim(s Spec) (int, error) {
	if s.Cardinality != Discrete {
		return 0, errors.Errorf("flatDim: spec must be discrete, got %v",
			s.Cardinality)
	}

	n := 1
	for i := 0; i < s.Shape.Len(); i++ {
		values := int(s.UpperBound.AtVec(i)-s.LowerBound.AtVec(i)) + 1
		if values <= 0 {
			return 0, errors.Errorf("flatDim: upper bound %v below lower "+
				"bound %v at dimension %d", s.UpperBound.AtVec(i),
				s.LowerBound.AtVec(i), i)
		}
		n *= values
	}
	return n, nil
}

// FlatDims returns the FlatDim of each Spec
func FlatDims(specs []Spec) ([]int, error) {
	dims := make([]int, len(specs))
	for i, s := range specs {
		n, err := FlatDim(s)
		if err != nil {
			return nil, errors.Wrapf(err, "flatDims: spec %d", i)
		}
		dims[i] = n
	}
	return dims, nil
}
