package matrixgame

import "gonum.org/v1/gonum/mat"

// Climbing returns the common payoff matrix of the climbing game. The
// optimal joint action (0, 0) is surrounded by heavy penalties, which
// makes independent learners settle on the safer (1, 1) or (2, 2).
func Climbing() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		11, -30, 0,
		-30, 7, 6,
		0, 0, 5,
	})
}

// Penalty returns the common payoff matrix of the penalty game with
// miscoordination penalty k <= 0
func Penalty(k float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		10, 0, k,
		0, 2, 0,
		k, 0, 10,
	})
}
