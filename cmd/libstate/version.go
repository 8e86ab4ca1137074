package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/libstate"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of libstate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "libstate version %s\n", strings.TrimSpace(libstate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
