package experiment

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	ts "github.com/samuelfneumann/tabular/timestep"
)

// Online is an Experiment that trains a single agent online.
//
// Agents which implement agent.TDLearner learn after every timestep,
// while agents which implement agent.EpisodeLearner learn at the end
// of every episode.
type Online struct {
	base
	env   env.Environment
	agent agent.Agent

	td      agent.TDLearner
	episode agent.EpisodeLearner
	buffer  ts.Episode
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of tracker.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps int,
	t ...tracker.Tracker) (*Online, error) {
	o := &Online{
		base:  base{maxSteps: steps, trackers: t},
		env:   e,
		agent: a,
	}

	switch learner := a.(type) {
	case agent.TDLearner:
		o.td = learner
	case agent.EpisodeLearner:
		o.episode = learner
	default:
		return nil, errors.Errorf("newOnline: agent %T cannot learn", a)
	}

	return o, nil
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	o.agent.ScheduleHyperparameters(o.currentSteps, o.maxSteps)

	step, err := o.env.Reset()
	if err != nil {
		return false, errors.Wrap(err, "runEpisode")
	}
	o.track(step)
	o.buffer.Clear()

	var episodeReturn float64
	start := o.currentSteps
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		action := o.agent.SelectAction(step.Observation)
		next, _, err := o.env.Step(action)
		if err != nil {
			return false, errors.Wrap(err, "runEpisode")
		}
		o.track(next)
		episodeReturn += next.Reward

		if o.td != nil {
			if _, err := o.td.Learn(ts.NewTransition(step, action,
				next)); err != nil {
				return false, errors.Wrap(err, "runEpisode")
			}
		} else {
			o.buffer.Append(step.Observation, action, next.Reward)
		}

		step = next
	}

	if o.episode != nil {
		if _, err := o.episode.LearnEpisode(o.buffer); err != nil {
			return false, errors.Wrap(err, "runEpisode")
		}
	}

	glog.V(1).Infof("episode %d: %d steps, return %.3f", o.episodes,
		o.currentSteps-start, episodeReturn)
	if err := o.endEpisode(o.currentSteps - start); err != nil {
		return false, errors.Wrap(err, "runEpisode")
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run(ctx context.Context) error {
	glog.Infof("online: training %T for %d steps", o.agent, o.maxSteps)

	for ended := false; !ended; {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return err
		}
	}

	glog.Infof("online: finished %d episodes", o.episodes)
	return nil
}

// Evaluate runs the agent in evaluation mode for a number of episodes
// without learning and returns the mean episodic return. Episodes are
// run on the training environment and do not count towards the
// timestep limit.
func (o *Online) Evaluate(ctx context.Context, episodes int) (float64,
	error) {
	if episodes <= 0 {
		return 0, errors.Errorf("evaluate: episodes must be positive")
	}

	wasEval := o.agent.IsEval()
	o.agent.Eval()
	defer func() {
		if !wasEval {
			o.agent.Train()
		}
	}()

	var total float64
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		step, err := o.env.Reset()
		if err != nil {
			return 0, errors.Wrap(err, "evaluate")
		}
		for !step.Last() {
			step, _, err = o.env.Step(o.agent.SelectAction(step.Observation))
			if err != nil {
				return 0, errors.Wrap(err, "evaluate")
			}
			total += step.Reward
		}
	}

	mean := total / float64(episodes)
	glog.Infof("online: evaluation return %.3f over %d episodes", mean,
		episodes)
	return mean, nil
}

// track tracks the current timestep by caching its data in each
// tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
