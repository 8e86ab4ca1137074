package main

import (
	"github.com/aretw0/libstate/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run the graph defined in FILE",
	Long: `Bakes the graph and runs it. With --runs the same runner is reused, so every
run starts again from the initial state's original memory. Ctrl+C stops the
current run after the state being visited; a second Ctrl+C cancels it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, _ := cmd.Flags().GetInt("runs")
		return cli.Execute(cmd.Context(), cli.RunOptions{
			Options: commonOptions(cmd, args),
			Runs:    runs,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntP("runs", "n", 1, "Number of consecutive runs")
}
