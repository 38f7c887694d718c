package experiment

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/agent"
	env "github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/stat"
)

// MultiOnline is an Experiment that trains a set of agents online in a
// stateless repeated game. Agents learn after every round.
//
// Trackers receive one TimeStep per round whose reward is the mean
// reward over agents. A round is the last of its episode once every
// agent is done.
type MultiOnline struct {
	base
	env    env.MultiEnvironment
	agents agent.MultiAgent
}

// NewMultiOnline creates and returns a new online experiment on a game
// played by agents. The steps parameter determines how many rounds the
// experiment is run for, and the t parameter is a slice of
// tracker.Tracker which determine what data is saved.
func NewMultiOnline(e env.MultiEnvironment, a agent.MultiAgent, steps int,
	t ...tracker.Tracker) (*MultiOnline, error) {
	if e.NumAgents() != a.NumAgents() {
		return nil, errors.Errorf("newMultiOnline: environment has %d agents "+
			"but %d agents were given", e.NumAgents(), a.NumAgents())
	}

	return &MultiOnline{
		base:   base{maxSteps: steps, trackers: t},
		env:    e,
		agents: a,
	}, nil
}

// RunEpisode runs a single episode of the experiment
func (m *MultiOnline) RunEpisode() (bool, error) {
	m.agents.ScheduleHyperparameters(m.currentSteps, m.maxSteps)

	rounds, episodeReturn, err := m.runEpisode(true)
	if err != nil {
		return false, errors.Wrap(err, "runEpisode")
	}

	glog.V(1).Infof("episode %d: %d rounds, mean return %.3f", m.episodes,
		rounds, episodeReturn)
	if err := m.endEpisode(rounds); err != nil {
		return false, errors.Wrap(err, "runEpisode")
	}

	return m.currentSteps >= m.maxSteps, nil
}

// runEpisode plays a single episode and returns the number of rounds
// played and the episodic return averaged over agents. If train is
// true the agents learn, rounds count towards the timestep limit and
// timesteps are tracked.
func (m *MultiOnline) runEpisode(train bool) (int, float64, error) {
	if err := m.env.Reset(); err != nil {
		return 0, 0, err
	}
	if train {
		m.track(ts.New(ts.First, 0, 1, 0, 0))
	}

	var episodeReturn float64
	round := 0
	for !train || m.currentSteps < m.maxSteps {
		actions := m.agents.Act()
		rewards, dones, err := m.env.Step(actions)
		if err != nil {
			return round, episodeReturn, err
		}
		round++

		reward := stat.Mean(rewards, nil)
		episodeReturn += reward

		done := true
		for _, d := range dones {
			done = done && d
		}

		if train {
			m.currentSteps++
			if _, err := m.agents.Learn(actions, rewards, dones); err != nil {
				return round, episodeReturn, err
			}

			stepType := ts.Mid
			if done {
				stepType = ts.Last
			}
			m.track(ts.New(stepType, reward, 1, 0, round))
		}

		if done {
			break
		}
	}

	return round, episodeReturn, nil
}

// Run runs the entire experiment for all timesteps
func (m *MultiOnline) Run(ctx context.Context) error {
	glog.Infof("multiOnline: training %T for %d rounds", m.agents,
		m.maxSteps)

	for ended := false; !ended; {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if ended, err = m.RunEpisode(); err != nil {
			return err
		}
	}

	glog.Infof("multiOnline: finished %d episodes", m.episodes)
	return nil
}

// Evaluate runs the agents in evaluation mode for a number of episodes
// without learning and returns the mean episodic return averaged over
// agents
func (m *MultiOnline) Evaluate(ctx context.Context, episodes int) (float64,
	error) {
	if episodes <= 0 {
		return 0, errors.Errorf("evaluate: episodes must be positive")
	}

	wasEval := m.agents.IsEval()
	m.agents.Eval()
	defer func() {
		if !wasEval {
			m.agents.Train()
		}
	}()

	var total float64
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		_, episodeReturn, err := m.runEpisode(false)
		if err != nil {
			return 0, errors.Wrap(err, "evaluate")
		}
		total += episodeReturn
	}

	mean := total / float64(episodes)
	glog.Infof("multiOnline: evaluation return %.3f over %d episodes", mean,
		episodes)
	return mean, nil
}

// track tracks the current timestep by caching its data in each
// tracker
func (m *MultiOnline) track(t ts.TimeStep) {
	for _, tr := range m.trackers {
		tr.Track(t)
	}
}
