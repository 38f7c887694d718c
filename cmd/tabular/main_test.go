package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/tabular/experiment/tracker"
	. "github.com/smartystreets/goconvey/convey"
)

const config = `
type: MultiOnlineExperiment
maxsteps: 200
envconf:
  environment: Climbing
  episodecutoff: 1
  discount: 1
agentconf:
  type: IndependentQLearning-MultiAgent
  configlist:
    epsilon: [1]
    learningrate: [0.5]
    discount: [0.99]
    decay: [0.08]
    discountschedule: [{}]
`

func TestCommands(t *testing.T) {
	Convey("Given the root command", t, func() {
		root := rootCommand()
		var out bytes.Buffer
		root.SetOut(&out)

		Convey("List prints registered agents and environments", func() {
			root.SetArgs([]string{"list"})
			So(root.Execute(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "QLearning-Tabular")
			So(out.String(), ShouldContainSubstring,
				"JointActionLearning-MultiAgent")
			So(out.String(), ShouldContainSubstring, "Penalty")
		})

		Convey("Train saves the data of every run", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "climbing.yaml")
			So(os.WriteFile(path, []byte(config), 0o644), ShouldBeNil)

			results := filepath.Join(dir, "results")
			root.SetArgs([]string{"train", path, "--runs", "2",
				"--parallelism", "2", "--out", results, "--plot"})
			So(root.Execute(), ShouldBeNil)

			for _, name := range []string{"return-0.bin", "return-1.bin"} {
				data, err := tracker.LoadData[float64](filepath.Join(results,
					name))
				So(err, ShouldBeNil)
				So(len(data), ShouldEqual, 200)
			}
			_, err := os.Stat(filepath.Join(results, "returns.png"))
			So(err, ShouldBeNil)
		})

		Convey("Train rejects missing configurations", func() {
			root.SetArgs([]string{"train", "missing.yaml"})
			So(root.Execute(), ShouldNotBeNil)
		})
	})
}
