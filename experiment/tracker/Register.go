package tracker

import (
	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// The Track() and Save() methods of a register call those of the
// embedded Tracker. The only difference is that registeredTracker calls
// the Track() method of the embedded Tracker using the current
// TimeStep of the registered Environment, and the argument to
// registeredTracker.Track() is ignored.
//
// This is useful when an experiment steps a different Environment
// than the one whose data should be tracked, for example when
// evaluating on a separate copy of the training Environment.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a new Tracker with an Environment, to track data
// from the registered Environment only.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the current
// TimeStep from the registered Environment.
func (r *registeredTracker) Track(ts.TimeStep) {
	r.Tracker.Track(r.env.CurrentTimeStep())
}
