// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"

	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/samuelfneumann/tabular/utils/progressbar"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to their Trackers, which
// cache the data in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the maximum timestep limit is reached, the
// context is cancelled, or an error occurs. The RunEpisode() function
// will run a single episode.
type Experiment interface {
	Run(ctx context.Context) error

	// RunEpisode returns whether or not the timestep limit was reached
	RunEpisode() (bool, error)

	// Evaluate runs the greedy policy for a number of episodes without
	// learning and returns the mean episodic return
	Evaluate(ctx context.Context, episodes int) (float64, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// SetProgressBar sets a progress bar which is updated after each
	// episode
	SetProgressBar(p *progressbar.ProgressBar)
}

// base implements the bookkeeping shared by experiments
type base struct {
	maxSteps     int
	currentSteps int
	episodes     int
	trackers     []tracker.Tracker
	progress     *progressbar.ProgressBar
}

// Register registers a tracker.Tracker with an Experiment so that
// data generated during the experiment can be tracked and saved
func (b *base) Register(t tracker.Tracker) {
	b.trackers = append(b.trackers, t)
}

// SetProgressBar sets the progress bar updated after each episode
func (b *base) SetProgressBar(p *progressbar.ProgressBar) {
	b.progress = p
}

// Save saves the data cached by the Trackers to disk
func (b *base) Save() error {
	for _, t := range b.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

// Steps returns the number of timesteps run so far
func (b *base) Steps() int {
	return b.currentSteps
}

// Episodes returns the number of episodes run so far
func (b *base) Episodes() int {
	return b.episodes
}

// endEpisode records that an episode of the given number of steps has
// finished and updates the progress bar
func (b *base) endEpisode(steps int) error {
	b.episodes++
	if b.progress == nil {
		return nil
	}
	b.progress.Add(steps)
	return b.progress.Display()
}
