package montecarlo

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/schedule"
	"github.com/samuelfneumann/tabular/table"
	ts "github.com/samuelfneumann/tabular/timestep"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLearnEpisode(t *testing.T) {
	Convey("Given a Monte-Carlo agent with γ=0.5", t, func() {
		m, err := New(2, Config{Epsilon: 0.1, Discount: 0.5}, 3)
		So(err, ShouldBeNil)

		Convey("A repeated pair is updated once with every visit counted",
			func() {
				e := ts.Episode{
					Observations: []int{0, 0},
					Actions:      []int{1, 1},
					Rewards:      []float64{1, 2},
				}
				returns, err := m.LearnEpisode(e)
				So(err, ShouldBeNil)

				pair := table.StateAction{State: 0, Action: 1}
				So(returns, ShouldResemble,
					map[table.StateAction]float64{pair: 2})
				So(m.Count(pair), ShouldEqual, 2)

				// The single first-visit return is averaged over both
				// counted visits
				So(m.Values().Get(pair), ShouldEqual, 1)
			})

		Convey("Distinct pairs receive their discounted returns", func() {
			var e ts.Episode
			e.Append(0, 0, 1)
			e.Append(1, 1, 0)
			e.Append(2, 0, 4)

			returns, err := m.LearnEpisode(e)
			So(err, ShouldBeNil)
			So(len(returns), ShouldEqual, 3)
			So(returns[table.StateAction{State: 2, Action: 0}], ShouldEqual, 4)
			So(returns[table.StateAction{State: 1, Action: 1}], ShouldEqual, 2)
			So(returns[table.StateAction{State: 0, Action: 0}], ShouldEqual, 2)
			So(m.Values().Get(table.StateAction{State: 1, Action: 1}),
				ShouldEqual, 2)
		})

		Convey("Identical episodes keep the running average fixed", func() {
			e := ts.Episode{
				Observations: []int{3},
				Actions:      []int{0},
				Rewards:      []float64{5},
			}
			for i := 0; i < 10; i++ {
				_, err := m.LearnEpisode(e)
				So(err, ShouldBeNil)
			}
			pair := table.StateAction{State: 3, Action: 0}
			So(m.Values().Get(pair), ShouldAlmostEqual, 5)
			So(m.Count(pair), ShouldEqual, 10)
		})

		Convey("Returns are averaged across episodes", func() {
			for _, r := range []float64{1, 3} {
				_, err := m.LearnEpisode(ts.Episode{
					Observations: []int{0},
					Actions:      []int{0},
					Rewards:      []float64{r},
				})
				So(err, ShouldBeNil)
			}
			So(m.Values().Get(table.StateAction{}), ShouldEqual, 2)
		})

		Convey("Malformed episodes leave the table untouched", func() {
			_, err := m.LearnEpisode(ts.Episode{
				Observations: []int{0, 1},
				Actions:      []int{0},
				Rewards:      []float64{1, 1},
			})
			So(errors.Is(err, agent.ErrLengthMismatch), ShouldBeTrue)

			_, err = m.LearnEpisode(ts.Episode{
				Observations: []int{0, 1},
				Actions:      []int{0, 2},
				Rewards:      []float64{1, 1},
			})
			So(errors.Is(err, agent.ErrInvalidAction), ShouldBeTrue)

			So(m.Values().Len(), ShouldEqual, 0)
			So(m.Count(table.StateAction{}), ShouldEqual, 0)
		})

		Convey("An empty episode updates nothing", func() {
			returns, err := m.LearnEpisode(ts.Episode{})
			So(err, ShouldBeNil)
			So(returns, ShouldBeEmpty)
		})
	})
}

func TestScheduleHyperparameters(t *testing.T) {
	Convey("Given a custom epsilon schedule", t, func() {
		sched := schedule.Linear{Start: 0.5, Decay: 1, MaxDeduct: 0.5}
		m, err := New(2, Config{Epsilon: 0.1, Discount: 1, Schedule: sched}, 1)
		So(err, ShouldBeNil)

		m.ScheduleHyperparameters(50, 100)
		So(m.Epsilon(), ShouldAlmostEqual, sched.Value(0, 50, 100))
		So(m.Discount(), ShouldEqual, 1)
	})
}
