package gridworld

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	env "github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

func newTestWorld(t *testing.T, cutoff int) *GridWorld {
	t.Helper()

	task, err := NewGoal(env.NewSingleStart(0), []int{2}, []int{1}, 2, 3,
		-1.0, 10.0, cutoff)
	if err != nil {
		t.Fatal(err)
	}
	g, _, err := New(2, 3, task, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestStepReachesGoal(t *testing.T) {
	g := newTestWorld(t, 100)

	// (0, 0) -> (1, 0) -> (2, 0) -> (2, 1)
	for _, a := range []int{Right, Right} {
		step, last, err := g.Step(a)
		if err != nil {
			t.Fatal(err)
		}
		if last || step.Reward != -1.0 {
			t.Fatalf("step: unexpected step %v", step)
		}
	}

	step, last, err := g.Step(Up)
	if err != nil {
		t.Fatal(err)
	}
	if !last || step.Reward != 10.0 || step.Observation != CToInd(2, 1, 3) {
		t.Errorf("step: want goal reached, got %v", step)
	}
	if step.EndType() != ts.TerminalStateReached {
		t.Errorf("step: want TerminalStateReached, got %v", step.EndType())
	}
}

func TestStepWalls(t *testing.T) {
	g := newTestWorld(t, 100)

	for _, a := range []int{Left, Down} {
		step, _, err := g.Step(a)
		if err != nil {
			t.Fatal(err)
		}
		if step.Observation != 0 {
			t.Errorf("step: moving into a wall changed state to %d",
				step.Observation)
		}
	}
}

func TestStepCutoff(t *testing.T) {
	g := newTestWorld(t, 2)

	g.Step(Left)
	step, last, _ := g.Step(Left)
	if !last || step.EndType() != ts.Timeout {
		t.Errorf("step: want timeout after cutoff, got %v", step)
	}

	step, err := g.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !step.First() || step.Observation != 0 {
		t.Errorf("reset: unexpected first step %v", step)
	}
}

func TestIllegalAction(t *testing.T) {
	g := newTestWorld(t, 10)
	if _, _, err := g.Step(Actions); err == nil {
		t.Error("step: expected error for illegal action")
	}
}

func TestSpecs(t *testing.T) {
	g := newTestWorld(t, 10)

	n, err := env.FlatDim(g.ActionSpec())
	if err != nil || n != Actions {
		t.Errorf("actionSpec: want %d actions, got %d (%v)", Actions, n, err)
	}
	n, err = env.FlatDim(g.ObservationSpec())
	if err != nil || n != 6 {
		t.Errorf("observationSpec: want 6 states, got %d (%v)", n, err)
	}
}

func TestNewGoalBounds(t *testing.T) {
	if _, err := NewGoal(env.NewSingleStart(0), []int{3}, []int{0}, 2, 3,
		0, 1, 10); err == nil {
		t.Error("newGoal: expected error for goal outside grid")
	}
	if _, err := NewGoal(env.NewSingleStart(0), []int{1, 2}, []int{0}, 2, 3,
		0, 1, 10); err == nil {
		t.Error("newGoal: expected error for mismatched coordinates")
	}
}

func TestNewKeepsCause(t *testing.T) {
	task, err := NewGoal(env.NewSingleStart(6), []int{2}, []int{1}, 2, 3,
		-1.0, 10.0, 10)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = New(2, 3, task, 0.9)
	if err == nil {
		t.Fatal("new: expected error for start outside the grid")
	}
	if cause := errors.Cause(err); !strings.HasPrefix(cause.Error(),
		"reset:") {
		t.Errorf("new: want reset error as cause, got %q", cause)
	}
}
