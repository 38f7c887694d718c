package matrixgame

import (
	"testing"

	env "github.com/samuelfneumann/tabular/environment"
	"gonum.org/v1/gonum/mat"
)

func TestStep(t *testing.T) {
	g, err := NewCommonPayoff(Climbing(), 2)
	if err != nil {
		t.Fatal(err)
	}

	rewards, dones, err := g.Step([]int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if rewards[0] != -30 || rewards[1] != -30 {
		t.Errorf("step: want rewards [-30 -30], got %v", rewards)
	}
	if dones[0] || dones[1] {
		t.Errorf("step: episode ended early")
	}

	_, dones, _ = g.Step([]int{0, 0})
	if !dones[0] || !dones[1] {
		t.Errorf("step: episode did not end at horizon")
	}

	g.Reset()
	_, dones, _ = g.Step([]int{2, 2})
	if dones[0] {
		t.Errorf("reset: round counter not reset")
	}
}

func TestGeneralSum(t *testing.T) {
	p0 := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	p1 := mat.NewDense(2, 2, []float64{-1, -2, -3, -4})
	g, err := New([]*mat.Dense{p0, p1}, 1)
	if err != nil {
		t.Fatal(err)
	}

	rewards, _, err := g.Step([]int{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if rewards[0] != 3 || rewards[1] != -3 {
		t.Errorf("step: want [3 -3], got %v", rewards)
	}
}

func TestInvalid(t *testing.T) {
	g, _ := NewCommonPayoff(Penalty(-10), 1)
	if _, _, err := g.Step([]int{3, 0}); err == nil {
		t.Error("step: expected error for illegal action")
	}
	if _, _, err := g.Step([]int{0}); err == nil {
		t.Error("step: expected error for missing action")
	}

	if _, err := New([]*mat.Dense{Climbing()}, 1); err == nil {
		t.Error("new: expected error for single payoff matrix")
	}
	if _, err := NewCommonPayoff(Climbing(), 0); err == nil {
		t.Error("new: expected error for zero horizon")
	}
	p1 := mat.NewDense(2, 3, nil)
	if _, err := New([]*mat.Dense{Climbing(), p1}, 1); err == nil {
		t.Error("new: expected error for mismatched payoffs")
	}
}

func TestActionSpecs(t *testing.T) {
	g, _ := NewCommonPayoff(Climbing(), 1)
	for i, spec := range g.ActionSpecs() {
		n, err := env.FlatDim(spec)
		if err != nil || n != 3 {
			t.Errorf("actionSpecs: player %d want 3 actions, got %d (%v)",
				i, n, err)
		}
	}
}
