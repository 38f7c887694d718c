package floatutils

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestClip(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0.5, 0.5}, {2, 1},
	}
	for _, c := range cases {
		if got := Clip(c.in, 0, 1); got != c.want {
			t.Errorf("Clip(%v): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{1, 3, 0, 3, -2})
	if max != 3 {
		t.Errorf("max: want 3, got %v", max)
	}
	if len(indices) != 2 || indices[0] != 1 || indices[1] != 3 {
		t.Errorf("indices: want [1 3], got %v", indices)
	}

	// Ensure the first element is not counted twice
	_, indices = MaxSlice([]float64{5, 1})
	if len(indices) != 1 || indices[0] != 0 {
		t.Errorf("indices: want [0], got %v", indices)
	}
}

func TestArgMax(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := []float64{0, 2, 1, 2}

	seen := make(map[int]int)
	for i := 0; i < 1000; i++ {
		seen[ArgMax(values, rng)]++
	}

	if len(seen) != 2 || seen[1] == 0 || seen[3] == 0 {
		t.Errorf("ArgMax: expected only maximizers 1 and 3, got %v", seen)
	}
}
