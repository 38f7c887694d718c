// Package schedule implements hyperparameter schedules that are
// applied once per episode, before any action is selected in that
// episode.
//
// Values produced by a Scheduler are held constant for the whole
// episode: the learners only read the scheduled value while acting and
// learning.
package schedule

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultMultiAgentDecay is the fraction of the training horizon over
// which the multi-agent epsilon schedule decays to its floor
const DefaultMultiAgentDecay float64 = 0.08

// Scheduler computes the value of a hyperparameter at the start of an
// episode beginning at timestep t of a training run lasting T
// timesteps. current is the value used in the previous episode.
type Scheduler interface {
	Value(current float64, t, T int) float64
}

// Linear decays a value linearly from Start. The value decreases by
// MaxDeduct for every Decay fraction of the horizon, and stops
// decreasing once Start has been deducted MaxDeduct times:
//
//	value = Start - min(Start, t / (Decay * T)) * MaxDeduct
//
// If Cutoff > 0 then the value is further clamped by a second linear
// decay reaching 0 at Cutoff * T:
//
//	value = min(value, 1 - min(1, t / (Cutoff * T)))
//
// Linear ignores the current value and is non-increasing in t.
type Linear struct {
	Start     float64
	Decay     float64
	MaxDeduct float64
	Cutoff    float64
}

// SingleAgent returns the epsilon schedule used by single-agent
// tabular learners
func SingleAgent() Linear {
	return Linear{Start: 0.7, Decay: 0.5, MaxDeduct: 0.95, Cutoff: 0.75}
}

// MultiAgent returns the epsilon schedule used by multi-agent learners,
// which decays from 1.0 to 0.05 over the first decay fraction of the
// horizon
func MultiAgent(decay float64) Linear {
	return Linear{Start: 1.0, Decay: decay, MaxDeduct: 0.95}
}

// Value implements the Scheduler interface. If T <= 0, no horizon is
// known and Start is returned.
func (l Linear) Value(_ float64, t, T int) float64 {
	if T <= 0 {
		return l.Start
	}
	horizon := float64(T)
	step := float64(t)

	value := l.Start - math.Min(l.Start, step/(l.Decay*horizon))*l.MaxDeduct
	if l.Cutoff > 0 {
		value = math.Min(value, 1-math.Min(1, step/(l.Cutoff*horizon)))
	}
	return value
}

// Validate returns an error if the schedule is not well defined
func (l Linear) Validate() error {
	if l.Decay <= 0 {
		return errors.Errorf("validate: decay must be positive, got %v",
			l.Decay)
	}
	if l.MaxDeduct < 0 {
		return errors.Errorf("validate: max deduction cannot be negative, "+
			"got %v", l.MaxDeduct)
	}
	if l.Cutoff < 0 {
		return errors.Errorf("validate: cutoff cannot be negative, got %v",
			l.Cutoff)
	}
	return nil
}

// Anneal multiplies the current value by Rate each episode, never
// going above Max. It is used to slowly anneal the discount factor.
// The zero Anneal is unset, see Discount.
type Anneal struct {
	Rate float64
	Max  float64
}

// Value implements the Scheduler interface
func (a Anneal) Value(current float64, _, _ int) float64 {
	return math.Min(a.Max, current*a.Rate)
}

// Validate returns an error if the schedule is not well defined
func (a Anneal) Validate() error {
	if a.Rate <= 0 {
		return errors.Errorf("validate: rate must be positive, got %v",
			a.Rate)
	}
	if a.Max < 0 || a.Max > 1 {
		return errors.Errorf("validate: max must be in [0, 1], got %v",
			a.Max)
	}
	return nil
}

// Discount returns the Scheduler used for the discount factor given
// the configured schedule a. The zero Anneal keeps the discount
// constant.
func Discount(a Anneal) Scheduler {
	if a == (Anneal{}) {
		return Constant{}
	}
	return a
}

// Constant keeps a hyperparameter fixed
type Constant struct{}

// Value implements the Scheduler interface
func (Constant) Value(current float64, _, _ int) float64 {
	return current
}
