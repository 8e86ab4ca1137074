package main

import (
	"fmt"
	"os"

	"github.com/aretw0/libstate/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "libstate",
	Short: "libstate runs deterministic state graphs",
	Long: `libstate loads a state graph from a YAML definition and runs it from its
entry transition until a terminal state is reached or the run is stopped.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("strict", false, "Treat states with several unguarded transitions as errors")
}

// commonOptions reads the persistent flags and the definition path.
func commonOptions(cmd *cobra.Command, args []string) cli.Options {
	level, _ := cmd.Flags().GetString("log-level")
	strict, _ := cmd.Flags().GetBool("strict")
	return cli.Options{Path: args[0], LogLevel: level, Strict: strict}
}
