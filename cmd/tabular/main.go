// Command tabular trains tabular and multi-agent learners from
// experiment configuration files.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	// Register agent types
	_ "github.com/samuelfneumann/tabular/agent/multiagent/iql"
	_ "github.com/samuelfneumann/tabular/agent/multiagent/jal"
	_ "github.com/samuelfneumann/tabular/agent/tabular/montecarlo"
	_ "github.com/samuelfneumann/tabular/agent/tabular/qlearning"
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabular",
		Short: "Train tabular reinforcement learning agents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the standard flag set, which
			// cobra has already filled
			return flag.CommandLine.Parse(nil)
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(
		trainCommand(),
		listCommand(),
	)
	return cmd
}

func main() {
	defer glog.Flush()

	if err := rootCommand().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
