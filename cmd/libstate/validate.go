package main

import (
	"github.com/aretw0/libstate/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check the graph for consistency",
	Long:  `Walks the graph from its entry transition and reports missing entries, dangling transitions, unreachable states and shadowed fallbacks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(commonOptions(cmd, args), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
