package schedule

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLinear(t *testing.T) {
	const T = 10_000

	Convey("Given the single-agent schedule", t, func() {
		s := SingleAgent()

		Convey("Epsilon starts at 0.7", func() {
			So(s.Value(0, 0, T), ShouldAlmostEqual, 0.7)
		})

		Convey("Epsilon decays by max deduction per decay fraction", func() {
			So(s.Value(0, T/4, T), ShouldAlmostEqual, 0.7-0.5*0.95)
			So(s.Value(0, T/2, T), ShouldAlmostEqual, 0.7-0.7*0.95)
		})

		Convey("The cutoff drives epsilon to zero", func() {
			So(s.Value(0, 3*T/4, T), ShouldAlmostEqual, 0.0)
			So(s.Value(0, T, T), ShouldAlmostEqual, 0.0)
		})

		Convey("Epsilon never increases", func() {
			prev := s.Value(0, 0, T)
			for step := 1; step <= T; step += 37 {
				eps := s.Value(0, step, T)
				So(eps, ShouldBeLessThanOrEqualTo, prev)
				prev = eps
			}
		})
	})

	Convey("Given the multi-agent schedule", t, func() {
		s := MultiAgent(DefaultMultiAgentDecay)

		So(s.Value(0, 0, T), ShouldAlmostEqual, 1.0)
		So(s.Value(0, 400, T), ShouldAlmostEqual, 1.0-0.5*0.95)
		So(s.Value(0, 800, T), ShouldAlmostEqual, 0.05)
		So(s.Value(0, T, T), ShouldAlmostEqual, 0.05)

		Convey("Epsilon stays within [0.05, 1.0] and never increases", func() {
			prev := 1.0
			for step := 0; step <= T; step += 13 {
				eps := s.Value(0, step, T)
				So(eps, ShouldBeLessThanOrEqualTo, prev)
				So(eps, ShouldBeGreaterThanOrEqualTo, 0.05-1e-12)
				prev = eps
			}
		})
	})

	Convey("Without a horizon the start value is used", t, func() {
		So(SingleAgent().Value(0.3, 100, 0), ShouldEqual, 0.7)
	})

	Convey("The current value is ignored", t, func() {
		s := MultiAgent(0.1)
		So(s.Value(0.2, 5, 100), ShouldEqual, s.Value(0.9, 5, 100))
	})
}

func TestLinearValidate(t *testing.T) {
	Convey("Linear schedules validate their parameters", t, func() {
		So(SingleAgent().Validate(), ShouldBeNil)
		So(MultiAgent(0.08).Validate(), ShouldBeNil)
		So(Linear{Start: 1, Decay: 0}.Validate(), ShouldNotBeNil)
		So(Linear{Start: 1, Decay: 1, MaxDeduct: -1}.Validate(), ShouldNotBeNil)
		So(Linear{Start: 1, Decay: 1, Cutoff: -1}.Validate(), ShouldNotBeNil)
	})
}

func TestStatefulSchedules(t *testing.T) {
	Convey("Anneal grows towards its maximum", t, func() {
		a := Anneal{Rate: 1.5, Max: 0.99}
		So(a.Value(0.5, 0, 0), ShouldEqual, 0.75)
		So(a.Value(0.9, 0, 0), ShouldEqual, 0.99)
	})

	Convey("Anneal rejects rates that would flip or blow up the value", t,
		func() {
			So(Anneal{Rate: 1.01, Max: 0.99}.Validate(), ShouldBeNil)
			So(Anneal{Rate: 0, Max: 0.99}.Validate(), ShouldNotBeNil)
			So(Anneal{Rate: -1.1, Max: 0.99}.Validate(), ShouldNotBeNil)
			So(Anneal{Rate: 1.01, Max: 1.5}.Validate(), ShouldNotBeNil)
		})

	Convey("Constant keeps the current value", t, func() {
		So(Constant{}.Value(0.42, 10, 100), ShouldEqual, 0.42)
	})

	Convey("The zero Anneal keeps the discount constant", t, func() {
		So(Discount(Anneal{}), ShouldResemble, Constant{})

		a := Anneal{Rate: 1.1, Max: 0.95}
		So(Discount(a), ShouldResemble, a)
	})
}
