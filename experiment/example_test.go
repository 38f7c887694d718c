package experiment_test

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/tracker"
)

func ExampleOnline() {
	var seed uint64 = 1923812
	r, c := 5, 5

	// Create the gridworld task of reaching a goal state. The goals
	// are specified as (x, y) coordinates
	goalX, goalY := []int{4}, []int{4}
	timestepReward, goalReward := -0.1, 1.0
	goal, err := gridworld.NewGoal(environment.NewSingleStart(0), goalX,
		goalY, r, c, timestepReward, goalReward, 100)
	if err != nil {
		fmt.Println("Could not create goal")
		return
	}

	// Create the gridworld
	discount := 0.99
	g, _, err := gridworld.New(r, c, goal, discount)
	if err != nil {
		fmt.Println("Could not create gridworld")
		return
	}

	// Create the Q-learning agent which will learn on this gridworld
	args := qlearning.Config{Epsilon: 0.25, LearningRate: 0.1,
		Discount: discount}
	q, err := qlearning.New(gridworld.Actions, args, seed)
	if err != nil {
		panic(err)
	}

	// Experiment
	ret := tracker.NewReturn("./data.bin")
	e, err := experiment.NewOnline(g, q, 100_000, ret)
	if err != nil {
		panic(err)
	}
	if err := e.Run(context.Background()); err != nil {
		panic(err)
	}

	data := ret.Data()
	fmt.Println(data[len(data)-10:])
}
