// Package matrixgame implements stateless repeated two-player matrix
// games. Each episode consists of a fixed number of rounds in which
// both players act simultaneously and receive the payoff of the joint
// action. Players observe nothing but their own rewards.
package matrixgame

import (
	"github.com/pkg/errors"
	env "github.com/samuelfneumann/tabular/environment"
	"gonum.org/v1/gonum/mat"
)

// Players is the number of players in a matrix game
const Players int = 2

// MatrixGame is a repeated two-player game. Payoffs[i].At(a0, a1) is the
// reward of player i when player 0 plays a0 and player 1 plays a1.
type MatrixGame struct {
	payoffs []*mat.Dense
	horizon int
	round   int
}

// New returns a new MatrixGame with one payoff matrix per player.
// Episodes last horizon rounds.
func New(payoffs []*mat.Dense, horizon int) (*MatrixGame, error) {
	if len(payoffs) != Players {
		return nil, errors.Errorf("new: matrix games need exactly %d payoff "+
			"matrices, got %d", Players, len(payoffs))
	}
	if horizon <= 0 {
		return nil, errors.Errorf("new: horizon must be positive, got %d",
			horizon)
	}

	r, c := payoffs[0].Dims()
	for i, p := range payoffs[1:] {
		if pr, pc := p.Dims(); pr != r || pc != c {
			return nil, errors.Errorf("new: payoff matrix %d has shape "+
				"(%d, %d), want (%d, %d)", i+1, pr, pc, r, c)
		}
	}

	return &MatrixGame{payoffs: payoffs, horizon: horizon}, nil
}

// NewCommonPayoff returns a MatrixGame where both players receive the
// same payoff
func NewCommonPayoff(payoff *mat.Dense, horizon int) (*MatrixGame, error) {
	return New([]*mat.Dense{payoff, payoff}, horizon)
}

// NumAgents returns the number of players
func (m *MatrixGame) NumAgents() int {
	return Players
}

// ActionSpecs returns the action specification of each player
func (m *MatrixGame) ActionSpecs() []env.Spec {
	r, c := m.payoffs[0].Dims()
	return []env.Spec{
		env.NewDiscreteSpec(env.Action, r),
		env.NewDiscreteSpec(env.Action, c),
	}
}

// Reset starts a new episode
func (m *MatrixGame) Reset() error {
	m.round = 0
	return nil
}

// Step plays one round of the game
func (m *MatrixGame) Step(actions []int) ([]float64, []bool, error) {
	if len(actions) != Players {
		return nil, nil, errors.Errorf("step: want %d actions, got %d",
			Players, len(actions))
	}
	r, c := m.payoffs[0].Dims()
	if actions[0] < 0 || actions[0] >= r || actions[1] < 0 ||
		actions[1] >= c {
		return nil, nil, errors.Errorf("step: illegal joint action %v",
			actions)
	}

	m.round++
	done := m.round >= m.horizon

	rewards := make([]float64, Players)
	dones := make([]bool, Players)
	for i := range rewards {
		rewards[i] = m.payoffs[i].At(actions[0], actions[1])
		dones[i] = done
	}
	return rewards, dones, nil
}

// Horizon returns the number of rounds per episode
func (m *MatrixGame) Horizon() int {
	return m.horizon
}
