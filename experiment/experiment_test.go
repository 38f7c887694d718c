package experiment

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/tabular/agent/multiagent/iql"
	"github.com/samuelfneumann/tabular/agent/multiagent/jal"
	"github.com/samuelfneumann/tabular/agent/tabular/montecarlo"
	"github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/environment/matrixgame"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/samuelfneumann/tabular/schedule"
	"github.com/samuelfneumann/tabular/utils/progressbar"
	. "github.com/smartystreets/goconvey/convey"
)

// newGridWorld returns a 2x2 gridworld starting in the bottom left
// with the goal in the top right
func newGridWorld() environment.Environment {
	task, err := gridworld.NewGoal(environment.NewSingleStart(0),
		[]int{1}, []int{1}, 2, 2, -1, 0, 20)
	So(err, ShouldBeNil)
	env, _, err := gridworld.New(2, 2, task, 0.9)
	So(err, ShouldBeNil)
	return env
}

// idle is an agent which can act but not learn
type idle struct{}

func (idle) SelectAction(int) int             { return 0 }
func (idle) Eval()                            {}
func (idle) Train()                           {}
func (idle) IsEval() bool                     { return false }
func (idle) ScheduleHyperparameters(int, int) {}

func TestOnline(t *testing.T) {
	Convey("Given a Q-Learning agent in a gridworld", t, func() {
		env := newGridWorld()
		a, err := qlearning.New(gridworld.Actions, qlearning.Config{
			Epsilon: 0.1, LearningRate: 0.5, Discount: 0.9}, 7)
		So(err, ShouldBeNil)

		ret := tracker.NewReturn("")
		length := tracker.NewEpisodeLength("")
		exp, err := NewOnline(env, a, 5000, ret, length)
		So(err, ShouldBeNil)

		Convey("Training runs for exactly the step limit", func() {
			So(exp.Run(context.Background()), ShouldBeNil)
			So(exp.Steps(), ShouldEqual, 5000)
			So(exp.Episodes(), ShouldBeGreaterThan, 0)
			So(len(ret.Data()), ShouldBeGreaterThan, 0)

			total := 0
			for _, l := range length.Data() {
				total += l
			}
			So(total, ShouldBeLessThanOrEqualTo, 5000)

			Convey("And the greedy policy reaches the goal by a "+
				"shortest path", func() {
				mean, err := exp.Evaluate(context.Background(), 5)
				So(err, ShouldBeNil)
				So(mean, ShouldEqual, -1)
				So(a.IsEval(), ShouldBeFalse)
			})
		})

		Convey("A cancelled context stops training", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := exp.Run(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(exp.Steps(), ShouldEqual, 0)
		})

		Convey("Progress is displayed after each episode", func() {
			var out bytes.Buffer
			exp.SetProgressBar(progressbar.New(10, 5000, &out))
			So(exp.Run(context.Background()), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "100.00%")
		})
	})

	Convey("Given a Monte-Carlo agent in a gridworld", t, func() {
		env := newGridWorld()
		a, err := montecarlo.New(gridworld.Actions, montecarlo.Config{
			Epsilon: 0.1, Discount: 0.9}, 3)
		So(err, ShouldBeNil)

		exp, err := NewOnline(env, a, 2000)
		So(err, ShouldBeNil)

		Convey("Episodes are learned from once finished", func() {
			So(exp.Run(context.Background()), ShouldBeNil)
			So(exp.Steps(), ShouldEqual, 2000)
			So(a.Values().Len(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Agents which cannot learn are rejected", t, func() {
		_, err := NewOnline(newGridWorld(), idle{}, 10)
		So(err, ShouldNotBeNil)
	})
}

func TestMultiOnline(t *testing.T) {
	Convey("Given joint action learners in the climbing game", t, func() {
		game, err := matrixgame.NewCommonPayoff(matrixgame.Climbing(), 1)
		So(err, ShouldBeNil)
		a, err := jal.New([]int{3, 3}, jal.Config{Epsilon: 1,
			LearningRate: 0.5, Discount: 0.99}, 5)
		So(err, ShouldBeNil)

		ret := tracker.NewReturn("")
		exp, err := NewMultiOnline(game, a, 3000, ret)
		So(err, ShouldBeNil)

		Convey("Every round is a single episode", func() {
			So(exp.Run(context.Background()), ShouldBeNil)
			So(exp.Steps(), ShouldEqual, 3000)
			So(exp.Episodes(), ShouldEqual, 3000)
			So(len(ret.Data()), ShouldEqual, 3000)
			So(a.Model(0).Total(), ShouldEqual, 3000)

			Convey("And evaluation does not learn", func() {
				_, err := exp.Evaluate(context.Background(), 10)
				So(err, ShouldBeNil)
				So(a.Model(0).Total(), ShouldEqual, 3000)
				So(a.IsEval(), ShouldBeFalse)
			})
		})
	})

	Convey("Agent counts must match the game", t, func() {
		game, err := matrixgame.NewCommonPayoff(matrixgame.Climbing(), 1)
		So(err, ShouldBeNil)
		q, err := iql.New([]int{3, 3, 3}, iql.Config{Epsilon: 0.1,
			LearningRate: 0.1, Discount: 0.9}, 1)
		So(err, ShouldBeNil)
		_, err = NewMultiOnline(game, q, 10)
		So(err, ShouldNotBeNil)
	})
}

const yamlConfig = `
type: OnlineExperiment
maxsteps: 1000
envconf:
  environment: GridWorld
  episodecutoff: 50
  discount: 0.9
  rows: 3
  cols: 3
agentconf:
  type: QLearning-Tabular
  configlist:
    epsilon: [0.1]
    learningrate: [0.5, 0.1]
    discount: [0.9]
    schedule: [{}]
    discountschedule: [{rate: 1.01, max: 0.95}]
`

const jsonConfig = `{
  "Type": "MultiOnlineExperiment",
  "MaxSteps": 500,
  "EnvConf": {"Environment": "Penalty", "EpisodeCutoff": 1, "Discount": 1,
    "Penalty": -50},
  "AgentConf": {
    "Type": "JointActionLearning-MultiAgent",
    "ConfigList": {"Epsilon": [1], "LearningRate": [0.5],
      "Discount": [0.99], "Decay": [0.08], "DiscountSchedule": [{}]}
  }
}`

func TestConfig(t *testing.T) {
	Convey("Given experiment configuration files", t, func() {
		dir := t.TempDir()

		Convey("A YAML configuration creates an online experiment", func() {
			path := filepath.Join(dir, "exp.yaml")
			So(os.WriteFile(path, []byte(yamlConfig), 0o644), ShouldBeNil)

			c, err := LoadConfig(path)
			So(err, ShouldBeNil)
			So(c.Type, ShouldEqual, OnlineExp)
			So(c.MaxSteps, ShouldEqual, 1000)
			So(c.EnvConf.Environment, ShouldEqual, envconfig.GridWorld)
			So(c.AgentConf.Len(), ShouldEqual, 2)
			So(c.AgentConf.At(1).(qlearning.Config).LearningRate,
				ShouldEqual, 0.1)
			So(c.AgentConf.At(1).(qlearning.Config).DiscountSchedule,
				ShouldResemble, schedule.Anneal{Rate: 1.01, Max: 0.95})

			exp, err := c.CreateExp(1, 42)
			So(err, ShouldBeNil)
			So(exp.Run(context.Background()), ShouldBeNil)
		})

		Convey("A JSON configuration creates a multi-agent experiment",
			func() {
				path := filepath.Join(dir, "exp.json")
				So(os.WriteFile(path, []byte(jsonConfig), 0o644), ShouldBeNil)

				c, err := LoadConfig(path)
				So(err, ShouldBeNil)
				So(c.Type, ShouldEqual, MultiOnlineExp)
				So(c.EnvConf.Penalty, ShouldEqual, -50)

				ret := tracker.NewReturn("")
				exp, err := c.CreateExp(0, 1, ret)
				So(err, ShouldBeNil)
				So(exp.Run(context.Background()), ShouldBeNil)
				So(len(ret.Data()), ShouldEqual, 500)
			})

		Convey("Mismatched experiments and environments are rejected",
			func() {
				yaml := strings.Replace(yamlConfig, "OnlineExperiment",
					"MultiOnlineExperiment", 1)
				path := filepath.Join(dir, "bad.yaml")
				So(os.WriteFile(path, []byte(yaml), 0o644), ShouldBeNil)

				_, err := LoadConfig(path)
				So(err, ShouldNotBeNil)
			})

		Convey("Missing files are reported", func() {
			_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
