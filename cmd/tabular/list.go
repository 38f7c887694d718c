package main

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/spf13/cobra"
)

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available agent types and environments",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Agents:")
			for _, t := range agent.RegisteredTypes() {
				fmt.Fprintf(out, "  %v\n", t)
			}

			fmt.Fprintln(out, "Environments:")
			for _, e := range envconfig.Environments() {
				multi := envconfig.Config{Environment: e}.Multi()
				fmt.Fprintf(out, "  %v (multi-agent: %v)\n", e, multi)
			}
		},
	}
}
