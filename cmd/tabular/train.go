package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/samuelfneumann/tabular/monitor"
	"github.com/samuelfneumann/tabular/utils/progressbar"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// trainFlags holds the flags of the train command
type trainFlags struct {
	seed        uint64
	index       int
	runs        int
	parallelism int
	out         string
	evaluate    int
	plot        bool
	progress    bool
	monitor     string
}

func trainCommand() *cobra.Command {
	flags := trainFlags{}

	cmd := &cobra.Command{
		Use:   "train CONFIG",
		Short: "Train agents described by an experiment configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return train(ctx, args[0], flags)
		},
	}

	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Seed of the first run")
	cmd.Flags().IntVar(&flags.index, "index", 0,
		"Index of the agent configuration to train")
	cmd.Flags().IntVar(&flags.runs, "runs", 1,
		"Number of runs, each seeded consecutively")
	cmd.Flags().IntVar(&flags.parallelism, "parallelism", 1,
		"Number of runs to train concurrently")
	cmd.Flags().StringVar(&flags.out, "out", "results",
		"Directory to save results to")
	cmd.Flags().IntVar(&flags.evaluate, "evaluate", 0,
		"Number of greedy evaluation episodes after training")
	cmd.Flags().BoolVar(&flags.plot, "plot", false,
		"Plot the learning curve of each run")
	cmd.Flags().BoolVar(&flags.progress, "progress", false,
		"Display a progress bar when training a single run")
	cmd.Flags().StringVar(&flags.monitor, "monitor", "",
		"Address to serve live episode summaries of the first run on")

	return cmd
}

// train runs every run of the experiment in the configuration file at
// path
func train(ctx context.Context, path string, flags trainFlags) error {
	if flags.runs <= 0 || flags.parallelism <= 0 {
		return errors.Errorf("train: runs and parallelism must be positive")
	}

	c, err := experiment.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(flags.out, 0o755); err != nil {
		return errors.Wrap(err, "train")
	}

	var hub *monitor.Hub
	if flags.monitor != "" {
		hub = monitor.NewHub()
		server := serveMonitor(flags.monitor, hub)
		defer server.Close()
	}

	glog.Infof("train: %v on %v with %v, config %d of %d, %d runs", c.Type,
		c.EnvConf.Environment, c.AgentConf.Type, flags.index,
		c.AgentConf.Len(), flags.runs)

	returns := make([][]float64, flags.runs)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(flags.parallelism)
	for run := 0; run < flags.runs; run++ {
		run := run
		group.Go(func() error {
			ret := tracker.NewReturn(filepath.Join(flags.out,
				fmt.Sprintf("return-%d.bin", run)))
			length := tracker.NewEpisodeLength(filepath.Join(flags.out,
				fmt.Sprintf("length-%d.bin", run)))

			trackers := []tracker.Tracker{ret, length}
			if hub != nil && run == 0 {
				trackers = append(trackers, hub)
			}

			exp, err := c.CreateExp(flags.index, flags.seed+uint64(run),
				trackers...)
			if err != nil {
				return err
			}
			if flags.progress && flags.runs == 1 {
				exp.SetProgressBar(progressbar.New(50, c.MaxSteps, os.Stderr))
			}

			if err := exp.Run(ctx); err != nil {
				return errors.Wrapf(err, "train: run %d", run)
			}
			if err := exp.Save(); err != nil {
				return errors.Wrapf(err, "train: run %d", run)
			}
			returns[run] = ret.Data()

			if flags.evaluate > 0 {
				mean, err := exp.Evaluate(ctx, flags.evaluate)
				if err != nil {
					return errors.Wrapf(err, "train: run %d", run)
				}
				fmt.Printf("run %d: mean evaluation return %.3f\n", run, mean)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if flags.plot {
		series := make(map[string][]float64, len(returns))
		for run, data := range returns {
			series[fmt.Sprintf("run %d", run)] = data
		}

		filename := filepath.Join(flags.out, "returns.png")
		title := fmt.Sprintf("%v: %v", c.EnvConf.Environment, c.AgentConf.Type)
		if err := tracker.Plot(filename, title, "Return", series,
			100); err != nil {
			return err
		}
		glog.Infof("train: saved learning curve to %v", filename)
	}
	return nil
}

// serveMonitor serves hub on addr in the background
func serveMonitor(addr string, hub *monitor.Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/episodes", hub)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			glog.Errorf("monitor: %v", err)
		}
	}()
	glog.Infof("monitor: serving episode summaries on ws://%v/episodes",
		addr)
	return server
}
